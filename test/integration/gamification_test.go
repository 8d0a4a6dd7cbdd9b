//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifequest/platform/test/integration/testutil"
)

// Seeded catalog ids from db/migrations/0002_seed_catalog.up.sql.
const (
	energyBoostEffectID = "a1000000-0000-0000-0000-000000000001"
	luckyCoinGearID     = "c1000000-0000-0000-0000-000000000006"
)

func TestRegisterAndLogin(t *testing.T) {
	env := testutil.NewTestEnv(t)

	token, userID := env.RegisterUser("ada", "ada@test.com", "securepass123")
	assert.NotEmpty(t, token)
	assert.NotEqual(t, uuid.Nil, userID)

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		resp := env.POST("/auth/register", map[string]string{
			"username": "ada", "email": "other@test.com", "password": "securepass123",
		}, "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("login starts the streak and fills mana", func(t *testing.T) {
		resp := env.POST("/auth/login", map[string]string{
			"identifier": "ada", "password": "securepass123",
		}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			User struct {
				LoginStreak int `json:"login_streak"`
				Mana        int `json:"mana"`
				Level       int `json:"level"`
			} `json:"user"`
			Token string `json:"token"`
		}
		env.DecodeBody(resp, &result)
		assert.Equal(t, 1, result.User.LoginStreak)
		assert.Equal(t, 120, result.User.Mana)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		resp := env.POST("/auth/login", map[string]string{
			"identifier": "ada", "password": "wrong-password",
		}, "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("protected route without token rejected", func(t *testing.T) {
		resp := env.GET("/tasks", "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

type completionResponse struct {
	Energy               int         `json:"energy"`
	XP                   int         `json:"xp"`
	Coins                int         `json:"coins"`
	LevelUps             int         `json:"level_ups"`
	UserLevel            int         `json:"user_level"`
	AlreadyCompleted     bool        `json:"already_completed"`
	UnlockedAchievements []uuid.UUID `json:"unlocked_achievements"`
}

func TestTaskCompletionRewards(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterUser("bob", "bob@test.com", "securepass123")

	taskID := env.CreateTask(token, "write report", 5, 10)

	resp := env.POST("/tasks/"+taskID.String()+"/complete", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result completionResponse
	env.DecodeBody(resp, &result)
	assert.Equal(t, 5, result.Energy)
	assert.Equal(t, 10, result.XP)
	assert.Equal(t, 10, result.Coins)
	assert.Equal(t, 1, result.UserLevel)
	// "First Steps" (seeded, threshold 1) unlocks on the first completion.
	assert.NotEmpty(t, result.UnlockedAchievements)

	t.Run("second completion is a no-op", func(t *testing.T) {
		resp := env.POST("/tasks/"+taskID.String()+"/complete", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var again completionResponse
		env.DecodeBody(resp, &again)
		assert.True(t, again.AlreadyCompleted)
		assert.Zero(t, again.XP)
	})

	t.Run("stats reflect the completion", func(t *testing.T) {
		resp := env.GET("/me/stats", token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var stats struct {
			NextLevelXP    int `json:"next_level_xp"`
			TasksCompleted int `json:"tasks_completed"`
			WeeklyEnergy   int `json:"weekly_energy"`
		}
		env.DecodeBody(resp, &stats)
		assert.Equal(t, 200, stats.NextLevelXP)
		assert.Equal(t, 1, stats.TasksCompleted)
		assert.Equal(t, 5, stats.WeeklyEnergy)
	})

	t.Run("unlocked achievements are listed", func(t *testing.T) {
		resp := env.GET("/achievements/unlocked", token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var unlocks []struct {
			AchievementID uuid.UUID `json:"achievement_id"`
		}
		env.DecodeBody(resp, &unlocks)
		assert.NotEmpty(t, unlocks)
	})
}

func TestLevelUpMintsGem(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterUser("cleo", "cleo@test.com", "securepass123")

	taskID := env.CreateTask(token, "ship the project", 0, 200)

	resp := env.POST("/tasks/"+taskID.String()+"/complete", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result completionResponse
	env.DecodeBody(resp, &result)
	assert.Equal(t, 2, result.UserLevel)
	assert.Equal(t, 1, result.LevelUps)
}

func TestStorePurchase(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterUser("dara", "dara@test.com", "securepass123")

	// Earn coins first.
	taskID := env.CreateTask(token, "earn coins", 0, 60)
	resp := env.POST("/tasks/"+taskID.String()+"/complete", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.POST("/store/gear/"+luckyCoinGearID+"/buy", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var purchase struct {
		PricePaid int `json:"price_paid"`
	}
	env.DecodeBody(resp, &purchase)
	assert.Equal(t, 10, purchase.PricePaid)

	t.Run("rebuying the same gear conflicts", func(t *testing.T) {
		resp := env.POST("/store/gear/"+luckyCoinGearID+"/buy", nil, token)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("the gear shows up in inventory", func(t *testing.T) {
		resp := env.GET("/store/inventory", token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var items []struct {
			GearID uuid.UUID `json:"gear_id"`
		}
		env.DecodeBody(resp, &items)
		require.Len(t, items, 1)
		assert.Equal(t, luckyCoinGearID, items[0].GearID.String())
	})
}

func TestEffectApply(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterUser("elio", "elio@test.com", "securepass123")

	resp := env.POST("/effects/"+energyBoostEffectID+"/apply", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user struct {
		Energy int `json:"energy"`
	}
	env.DecodeBody(resp, &user)
	assert.Equal(t, 10, user.Energy)
}
