package controllers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/models"
)

// ProfileController saves and serves the one profile row each user has.
type ProfileController struct {
	DB        *sql.DB
	UploadDir string
}

func NewProfileController(db *sql.DB, uploadDir string) *ProfileController {
	return &ProfileController{DB: db, UploadDir: uploadDir}
}

func getUserID(c *fiber.Ctx) (int64, error) {
	id := c.Locals("user_id")
	if id == nil {
		return 0, fmt.Errorf("user not found in context")
	}
	return id.(int64), nil
}

// SaveProfile replaces the caller's profile row with the submitted form
// fields. The photo is optional; when none is uploaded the stored photo
// reference is cleared, since the row is replaced wholesale rather than
// merged.
func (p *ProfileController) SaveProfile(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	var photoPath *string
	if file, err := c.FormFile("photo"); err == nil {
		// Millisecond-timestamp naming, so two uploads landing in the same
		// millisecond would overwrite each other.
		name := fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Ext(file.Filename))
		if err := c.SaveFile(file, filepath.Join(p.UploadDir, name)); err != nil {
			log.Printf("Photo save error: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Error saving profile"})
		}
		rel := "uploads/" + name
		photoPath = &rel
	}

	upsertQuery := `
	INSERT OR REPLACE INTO profiles (
		user_id, phone, dob, education,
		university, graduation_year,
		current_status, current_role,
		skills, interests, linkedin,
		github, bio, photo
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`

	_, err = p.DB.Exec(upsertQuery,
		userID,
		c.FormValue("phone"),
		c.FormValue("dob"),
		c.FormValue("education"),
		c.FormValue("university"),
		c.FormValue("graduation_year"),
		c.FormValue("current_status"),
		c.FormValue("current_role"),
		c.FormValue("skills"),
		c.FormValue("interests"),
		c.FormValue("linkedin"),
		c.FormValue("github"),
		c.FormValue("bio"),
		photoPath,
	)
	if err != nil {
		log.Printf("Profile upsert error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Error saving profile"})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Profile saved successfully"})
}

// GetProfile returns the caller's profile row, or JSON null when none has
// been saved yet. Only a store failure is an error.
func (p *ProfileController) GetProfile(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	var profile models.Profile
	selectQuery := `
	SELECT id, user_id, phone, dob, education, university, graduation_year,
	       current_status, current_role, skills, interests, linkedin, github, bio, photo
	FROM profiles WHERE user_id = ?`

	err = p.DB.QueryRow(selectQuery, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Phone,
		&profile.DOB,
		&profile.Education,
		&profile.University,
		&profile.GraduationYear,
		&profile.CurrentStatus,
		&profile.CurrentRole,
		&profile.Skills,
		&profile.Interests,
		&profile.Linkedin,
		&profile.Github,
		&profile.Bio,
		&profile.Photo,
	)

	if err == sql.ErrNoRows {
		return c.Status(http.StatusOK).JSON(nil)
	} else if err != nil {
		log.Printf("Profile query error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Error"})
	}

	return c.Status(http.StatusOK).JSON(profile)
}
