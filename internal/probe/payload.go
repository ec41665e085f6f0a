// Package probe generates and sends synthetic webhook payloads to verify a
// running bridge end to end, keeping a local log of what was sent.
package probe

import (
	"math/rand"
	"time"

	"github.com/meltforce/healthbridge/internal/models"
)

func randomInt(min, max int) float64 {
	return float64(min + rand.Intn(max-min+1))
}

func randomFloat(min, max float64, decimals int) float64 {
	v := min + rand.Float64()*(max-min)
	pow := 1.0
	for i := 0; i < decimals; i++ {
		pow *= 10
	}
	return float64(int(v*pow+0.5)) / pow
}

func point(value float64) []models.Datapoint {
	return []models.Datapoint{{
		Timestamp: time.Now().Format(time.RFC3339),
		Value:     value,
	}}
}

// Generate builds a realistic random health payload for one user.
func Generate(userID, token string) *models.WebhookPayload {
	return &models.WebhookPayload{
		Token:  token,
		UserID: userID,
		Data: map[string][]models.Datapoint{
			"steps":               point(randomInt(5000, 15000)),
			"heart_rate":          point(randomInt(60, 90)),
			"active_calories":     point(randomInt(200, 600)),
			"resting_heart_rate":  point(randomInt(55, 75)),
			"sleep_duration":      point(randomFloat(6.0, 9.0, 1)), // hours; the bridge normalizes
			"distance":            point(randomFloat(2000, 10000, 0)),
			"oxygen_saturation":   point(randomInt(95, 100)),
			"respiratory_rate":    point(randomInt(12, 20)),
			"body_mass":           point(randomFloat(60.0, 85.0, 1)),
			"body_fat_percentage": point(randomFloat(10.0, 25.0, 1)),
		},
	}
}

// TestConnection builds the connectivity probe payload.
func TestConnection(userID, token string) *models.WebhookPayload {
	return &models.WebhookPayload{
		Token:  token,
		UserID: userID,
		Data: map[string][]models.Datapoint{
			"test_connection": {{Value: true}},
		},
	}
}
