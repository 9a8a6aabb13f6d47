package user

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"instock_back_end/internal/cache"
	"instock_back_end/internal/database"
	"instock_back_end/internal/models"
	"instock_back_end/internal/services"
	"instock_back_end/internal/utils"
)

// AuthHandler regroupe les endpoints de compte. Le générateur de refresh
// tokens est injecté à la construction pour rester testable.
type AuthHandler struct {
	tokens *utils.RefreshTokenGenerator
}

func NewAuthHandler(tokens *utils.RefreshTokenGenerator) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// Register crée un compte utilisateur. Accepte du JSON ou, quand une
// photo de profil accompagne l'inscription, un formulaire multipart.
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		FirstName string `json:"firstName" form:"firstName"`
		LastName  string `json:"lastName" form:"lastName"`
		Email     string `json:"email" form:"email"`
		Password  string `json:"password" form:"password"`
	}

	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corps de requête invalide"})
		return
	}

	if !utils.ValidateName(input.FirstName) || !utils.ValidateName(input.LastName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prénom ou nom invalide"})
		return
	}
	if !utils.ValidateEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email invalide"})
		return
	}
	if !utils.ValidatePassword(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Le mot de passe doit faire 8 à 32 caractères avec majuscule, minuscule, chiffre et caractère spécial",
		})
		return
	}

	// Vérifier que l'email n'est pas déjà pris
	var existingID string
	err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte existe déjà avec cet email"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		log.Println("❌ Erreur hashage mot de passe:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	imageFilename := ""
	if file, err := c.FormFile("profileImage"); err == nil {
		if !utils.ValidateImageContentType(file.Header.Get("Content-Type")) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Format d'image non supporté"})
			return
		}
		imageFilename, err = services.UploadFile(c.Request.Context(), database.ProfileImagesBucket, file)
		if err != nil {
			log.Println("❌ Erreur upload photo de profil:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
			return
		}
	}

	userID := uuid.NewString()
	refreshToken := h.tokens.Generate()
	refreshExpiry := h.tokens.Expiry(time.Now())

	user := models.User{
		ID:            userID,
		Email:         input.Email,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Role:          "owner",
		AccountStatus: "active",
		CreatedAt:     time.Now().Unix(),
	}

	err = database.GetPreparedInsertUser().Bind(
		userID, input.Email, hashed, input.FirstName, input.LastName,
		user.Role, user.AccountStatus, nil, refreshToken, refreshExpiry,
		imageFilename, user.CreatedAt,
	).Exec()
	if err != nil {
		log.Println("❌ Erreur insertion utilisateur:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if err := database.GetPreparedInsertUserByEmail().Bind(input.Email, userID).Exec(); err != nil {
		log.Println("❌ Erreur insertion users_by_email:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		log.Println("❌ Erreur génération JWT:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	log.Println("✅ Nouveau compte créé:", input.Email)
	c.JSON(http.StatusCreated, gin.H{
		"token":        token,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

// Login authentifie un utilisateur et fait tourner son refresh token
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corps de requête invalide"})
		return
	}

	var userID string
	if err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&userID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	user, err := fetchUser(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	if !utils.CheckPassword(user.Password, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	refreshToken := h.tokens.Generate()
	refreshExpiry := h.tokens.Expiry(time.Now())
	if err := database.GetPreparedUpdateUserTokens().Bind(refreshToken, refreshExpiry, userID).Exec(); err != nil {
		log.Println("❌ Erreur rotation refresh token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	cache.InvalidateUserCache(userID)

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		log.Println("❌ Erreur génération JWT:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	log.Println("✅ Connexion de", input.Email)
	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

// Refresh échange un refresh token valide contre un nouveau couple de
// jetons. Token inconnu ou expiré : 401, l'utilisateur se reconnecte.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input struct {
		UserID       string `json:"userId"`
		RefreshToken string `json:"refreshToken"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" || input.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId et refreshToken requis"})
		return
	}

	user, err := fetchUser(input.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token invalide"})
		return
	}

	if user.RefreshToken == "" || user.RefreshToken != input.RefreshToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token invalide"})
		return
	}

	expiry, err := time.Parse(time.RFC3339, user.RefreshTokenExpiry)
	if err != nil || time.Now().After(expiry) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expiré"})
		return
	}

	newRefreshToken := h.tokens.Generate()
	newExpiry := h.tokens.Expiry(time.Now())
	if err := database.GetPreparedUpdateUserTokens().Bind(newRefreshToken, newExpiry, input.UserID).Exec(); err != nil {
		log.Println("❌ Erreur rotation refresh token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	cache.InvalidateUserCache(input.UserID)

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		log.Println("❌ Erreur génération JWT:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"refreshToken": newRefreshToken,
	})
}

// Me retourne le profil de l'utilisateur connecté
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := cache.GetUserFromCache(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	response := gin.H{"user": user}
	if user.ImageFilename != "" {
		signedURL, err := services.GenerateSignedURL(c.Request.Context(),
			database.ProfileImagesBucket, user.ImageFilename, 15*time.Minute)
		if err == nil {
			response["imageUrl"] = signedURL
		}
	}

	c.JSON(http.StatusOK, response)
}

// fetchUser lit un utilisateur complet, champs sensibles compris.
// À n'utiliser que pour l'authentification, jamais via le cache.
func fetchUser(userID string) (*models.User, error) {
	var (
		email, password, firstName, lastName string
		role, accountStatus                  string
		businessID                           *string
		refreshToken, refreshTokenExpiry     string
		imageFilename                        string
		createdAt                            int64
	)

	err := database.GetPreparedGetUserByID().Bind(userID).Scan(
		&email, &password, &firstName, &lastName, &role, &accountStatus,
		&businessID, &refreshToken, &refreshTokenExpiry, &imageFilename, &createdAt)
	if err != nil {
		return nil, err
	}

	return &models.User{
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
	}, nil
}
