package handlers

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/gitkushall/lostfound-project/internal/middleware"
	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/gitkushall/lostfound-project/internal/validate"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const verificationCodeTTL = 15 * time.Minute

func Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An account with this email already exists",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	code := generateVerificationCode()
	expires := time.Now().Add(verificationCodeTTL)
	user := models.User{
		Name:                      name,
		Email:                     email,
		PasswordHash:              string(hash),
		VerificationCode:          &code,
		VerificationCodeExpiresAt: &expires,
	}
	if err := db.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	sendVerificationEmail(email, code)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

func Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.EmailVerified)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(models.AuthResponse{Token: token, User: user})
}

// VerifyEmail confirms the emailed code, marks the account verified and
// returns a fresh token carrying the updated verification claim.
func VerifyEmail(c *fiber.Ctx) error {
	var req models.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email or code",
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired code",
		})
	}
	if user.VerificationCode == nil || user.VerificationCodeExpiresAt == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired code",
		})
	}
	if *user.VerificationCode != req.Code {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid verification code",
		})
	}
	if time.Now().After(*user.VerificationCodeExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Verification code has expired",
		})
	}

	err := db.Model(&user).Updates(map[string]interface{}{
		"email_verified":               true,
		"verification_code":            nil,
		"verification_code_expires_at": nil,
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Verification failed",
		})
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{"success": true, "token": token})
}

func ResendCode(c *fiber.Ctx) error {
	var req models.ResendCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		// Do not reveal whether the account exists.
		return c.JSON(fiber.Map{"success": true})
	}
	if user.EmailVerified {
		return c.JSON(fiber.Map{"success": true})
	}

	code := generateVerificationCode()
	expires := time.Now().Add(verificationCodeTTL)
	err := db.Model(&user).Updates(map[string]interface{}{
		"verification_code":            code,
		"verification_code_expires_at": expires,
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to refresh code",
		})
	}

	sendVerificationEmail(email, code)

	return c.JSON(fiber.Map{"success": true})
}

func GetMe(c *fiber.Ctx) error {
	var user models.User
	if err := db.First(&user, "id = ?", middleware.GetUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var user models.User
	if err := db.First(&user, "id = ?", middleware.GetUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.ProfilePhotoURL != nil {
		user.ProfilePhotoURL = req.ProfilePhotoURL
	}

	if err := db.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}
	return c.JSON(user)
}

func generateVerificationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		n = big.NewInt(time.Now().UnixNano() % 1000000)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

func sendVerificationEmail(email, code string) {
	subject := "Verify your Lost & Found account"
	text := fmt.Sprintf("Your verification code is: %s. It expires in 15 minutes.", code)
	if err := mailer.Send(email, subject, text); err != nil {
		log.Printf("auth: send verification email to %s: %v", email, err)
	}
}
