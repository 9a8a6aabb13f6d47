package cache

import (
	"context"
	"encoding/json"
	"time"

	"instock_back_end/internal/database"
	"instock_back_end/internal/models"
)

const (
	UserCacheTTL = 5 * time.Minute
	// Les statistiques se recalculent au plus toutes les 60 secondes
	StatsCacheTTL = 60 * time.Second
)

// GetUserFromCache récupère un utilisateur depuis Redis ou ScyllaDB
func GetUserFromCache(userID string) (*models.User, error) {
	ctx := context.Background()
	key := "user:" + userID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	var (
		email, password, firstName, lastName string
		role, accountStatus                  string
		businessID                           *string
		refreshToken, refreshTokenExpiry     string
		imageFilename                        string
		createdAt                            int64
	)

	err = database.GetPreparedGetUserByID().Bind(userID).Scan(
		&email, &password, &firstName, &lastName, &role, &accountStatus,
		&businessID, &refreshToken, &refreshTokenExpiry, &imageFilename, &createdAt)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:                 userID,
		Email:              email,
		Password:           password,
		FirstName:          firstName,
		LastName:           lastName,
		Role:               role,
		AccountStatus:      accountStatus,
		BusinessID:         businessID,
		RefreshToken:       refreshToken,
		RefreshTokenExpiry: refreshTokenExpiry,
		ImageFilename:      imageFilename,
		CreatedAt:          createdAt,
	}

	// 3. Mettre en cache (sans les champs sensibles, exclus du JSON)
	jsonData, _ := json.Marshal(user)
	database.Redis.Set(ctx, key, jsonData, UserCacheTTL)

	return user, nil
}

// InvalidateUserCache invalide le cache d'un utilisateur
func InvalidateUserCache(userID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "user:"+userID)
}

func statsKey(businessID string) string {
	return "stats:" + businessID
}

// GetStatsFromCache retourne les statistiques en cache d'un commerce,
// ou nil si absentes/expirées.
func GetStatsFromCache(ctx context.Context, businessID string) *models.AllStats {
	data, err := database.Redis.Get(ctx, statsKey(businessID)).Result()
	if err != nil {
		return nil
	}

	var stats models.AllStats
	if json.Unmarshal([]byte(data), &stats) != nil {
		return nil
	}
	return &stats
}

// SetStatsCache met en cache les statistiques calculées d'un commerce
func SetStatsCache(ctx context.Context, businessID string, stats *models.AllStats) {
	jsonData, err := json.Marshal(stats)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, statsKey(businessID), jsonData, StatsCacheTTL)
}

// InvalidateStatsCache invalide le cache après une écriture de stock
func InvalidateStatsCache(ctx context.Context, businessID string) {
	database.Redis.Del(ctx, statsKey(businessID))
}
