package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kagaba/farmlink-api/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput         = "invalid input"
	msgUserAlreadyExists    = "user already exists"
	msgFailedToHashPassword = "failed to hash password"
	msgInvalidCredentials   = "invalid email or password"
	msgAccountRestricted    = "Your account is restricted."
	msgInternalServerError  = "Internal server error"
	msgUserNotFound         = "User not found"
	msgSignupSuccess        = "Signup successful!"
	msgOldPasswordIncorrect = "Old password is incorrect"
)

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// userResponse is the record the client keeps in local storage. The
// password hash never leaves the server.
func userResponse(user models.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"fullName": user.Fullname,
		"email":    user.Email,
		"role":     user.Role,
		"status":   user.Status,
	}
}

// Signup handles user registration.
func (api *API) Signup(ctx *gin.Context) {
	var signUpData models.SignupData
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	role, err := models.ParseUserRole(signUpData.Role)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var existing models.User
	result := api.DB.Where("email = ?", signUpData.Email).Find(&existing)
	if result.Error != nil {
		log.Println("Database error during user check:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}

	hashedPassword, err := hashPassword(signUpData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Fullname: signUpData.FullName,
		Email:    signUpData.Email,
		Password: hashedPassword,
		Role:     role,
		Status:   models.StatusActive,
	}
	if result := api.DB.Create(&user); result.Error != nil {
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgSignupSuccess})
}

// Login authenticates by email and password. There is no token: the client
// receives the user record and persists it locally.
func (api *API) Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := api.DB.Where("email = ?", loginData.Email).First(&user).Error; err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if user.Status == models.StatusRestricted {
		sendErrorResponse(ctx, http.StatusForbidden, msgAccountRestricted)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Login successful!",
		"user":    userResponse(user),
	})
}

func (api *API) GetUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse user id")
		return
	}

	var user models.User
	if err := api.DB.First(&user, userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, userResponse(user))
}

// UpdateUser applies a partial profile update. A password change requires
// the matching old password.
func (api *API) UpdateUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse user id")
		return
	}

	var body struct {
		FullName    string `json:"fullName"`
		Email       string `json:"email"`
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := api.DB.First(&user, userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	updates := map[string]any{}
	if body.FullName != "" {
		updates["fullname"] = body.FullName
	}
	if body.Email != "" {
		updates["email"] = body.Email
	}
	if body.OldPassword != "" && body.NewPassword != "" {
		if err := comparePasswords(user.Password, body.OldPassword); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgOldPasswordIncorrect)
			return
		}
		hashedNew, err := hashPassword(body.NewPassword)
		if err != nil {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
			return
		}
		updates["password"] = hashedNew
	}

	if len(updates) == 0 {
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Nothing to update"})
		return
	}

	if err := api.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Println("Update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Update failed")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    userResponse(user),
	})
}
