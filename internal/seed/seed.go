// Package seed loads the demo dataset used by the placeholder login flow.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
)

type demoCourse struct {
	title       string
	description string
	level       models.CourseLevel
	instructor  string // email
}

type demoEnrollment struct {
	user   string // email
	course string // title
}

var demoUsers = []models.User{
	{Name: "Dr. Sarah Johnson", Email: "sarah.johnson@university.edu", Role: models.RoleProfessor},
	{Name: "Prof. Michael Chen", Email: "michael.chen@university.edu", Role: models.RoleProfessor},
	{Name: "Alice Smith", Email: "alice.smith@student.edu", Role: models.RoleStudent},
	{Name: "Bob Wilson", Email: "bob.wilson@student.edu", Role: models.RoleStudent},
}

var demoCourses = []demoCourse{
	{
		title:       "Introduction to React",
		description: "Learn the fundamentals of React including components, props, state, and hooks.",
		level:       models.LevelBeginner,
		instructor:  "sarah.johnson@university.edu",
	},
	{
		title:       "Advanced JavaScript",
		description: "Deep dive into JavaScript concepts including closures, prototypes, and async programming.",
		level:       models.LevelAdvanced,
		instructor:  "sarah.johnson@university.edu",
	},
	{
		title:       "Database Design",
		description: "Learn SQL, database normalization, and modern database design patterns.",
		level:       models.LevelIntermediate,
		instructor:  "michael.chen@university.edu",
	},
	{
		title:       "Node.js Backend Development",
		description: "Build scalable backend applications with Node.js, Express, and databases.",
		level:       models.LevelIntermediate,
		instructor:  "michael.chen@university.edu",
	},
}

var demoEnrollments = []demoEnrollment{
	{user: "alice.smith@student.edu", course: "Introduction to React"},
	{user: "bob.wilson@student.edu", course: "Introduction to React"},
	{user: "alice.smith@student.edu", course: "Database Design"},
}

// Run loads the demo dataset. Idempotent: it bails out when any user
// already exists, so restarts never duplicate data.
func Run(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	var userCount int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount > 0 {
		logger.Info("Demo seed skipped, users already present", "count", userCount)
		return nil
	}

	logger.Info("Seeding demo data")

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		usersByEmail := make(map[string]*models.User, len(demoUsers))
		for i := range demoUsers {
			user := demoUsers[i]
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", user.Email, err)
			}
			usersByEmail[user.Email] = &user
		}

		coursesByTitle := make(map[string]*models.Course, len(demoCourses))
		for _, dc := range demoCourses {
			instructor, ok := usersByEmail[dc.instructor]
			if !ok {
				return fmt.Errorf("seed instructor %s missing", dc.instructor)
			}
			course := models.Course{
				Title:        dc.title,
				Description:  dc.description,
				Level:        dc.level,
				InstructorID: instructor.ID,
			}
			if err := tx.Create(&course).Error; err != nil {
				return fmt.Errorf("failed to seed course %s: %w", dc.title, err)
			}
			coursesByTitle[dc.title] = &course
		}

		for _, de := range demoEnrollments {
			user, ok := usersByEmail[de.user]
			if !ok {
				return fmt.Errorf("seed user %s missing", de.user)
			}
			course, ok := coursesByTitle[de.course]
			if !ok {
				return fmt.Errorf("seed course %s missing", de.course)
			}
			enrollment := models.Enrollment{
				UserID:   user.ID,
				CourseID: course.ID,
			}
			if err := tx.Create(&enrollment).Error; err != nil {
				return fmt.Errorf("failed to seed enrollment %s/%s: %w", de.user, de.course, err)
			}
		}

		logger.Info("Demo data seeded",
			"users", len(demoUsers),
			"courses", len(demoCourses),
			"enrollments", len(demoEnrollments))

		return nil
	})
}
