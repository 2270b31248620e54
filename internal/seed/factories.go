// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devlink/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var devStatuses = []string{
	"Developer", "Senior Developer", "Junior Developer", "Manager",
	"Student or Learning", "Instructor or Teacher", "Intern",
}

var devSkills = []string{
	"JavaScript", "TypeScript", "Go", "Python", "Rust", "Java", "C#",
	"React", "Vue", "Node.js", "PostgreSQL", "Redis", "Docker", "Kubernetes",
	"GraphQL", "HTML", "CSS", "AWS", "Terraform", "Kafka",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	email := gofakeit.Email()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: string(hashedPassword),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/200?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateProfile constructs and persists a developer profile for the user,
// including a couple of experience and education entries.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	skillCount := f.r.Intn(5) + 2
	skills := make(models.SkillList, 0, skillCount)
	for _, i := range f.r.Perm(len(devSkills))[:skillCount] {
		skills = append(skills, devSkills[i])
	}

	profile := &models.Profile{
		UserID:         user.ID,
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Status:         devStatuses[f.r.Intn(len(devStatuses))],
		Skills:         skills,
		Bio:            gofakeit.Sentence(12),
		GithubUsername: strings.ToLower(gofakeit.Username()),
		Social: models.SocialLinks{
			Twitter:  fmt.Sprintf("https://twitter.com/%s", strings.ToLower(gofakeit.Username())),
			Linkedin: fmt.Sprintf("https://linkedin.com/in/%s", strings.ToLower(gofakeit.Username())),
		},
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}

	for i := 0; i < f.r.Intn(3)+1; i++ {
		if _, err := f.CreateExperience(profile); err != nil {
			return nil, err
		}
	}
	for i := 0; i < f.r.Intn(2)+1; i++ {
		if _, err := f.CreateEducation(profile); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

// CreateExperience persists a work history entry on the profile.
func (f *Factory) CreateExperience(profile *models.Profile, overrides ...func(*models.Experience)) (*models.Experience, error) {
	from := gofakeit.DateRange(
		time.Now().AddDate(-8, 0, 0), time.Now().AddDate(-1, 0, 0))
	current := f.r.Float32() < 0.3

	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       gofakeit.JobTitle(),
		Company:     gofakeit.Company(),
		Location:    gofakeit.City(),
		From:        from,
		Current:     current,
		Description: gofakeit.Sentence(15),
	}
	if !current {
		to := gofakeit.DateRange(from, time.Now())
		exp.To = &to
	}

	for _, override := range overrides {
		override(exp)
	}

	if err := f.db.Create(exp).Error; err != nil {
		return nil, err
	}
	return exp, nil
}

// CreateEducation persists an education entry on the profile.
func (f *Factory) CreateEducation(profile *models.Profile, overrides ...func(*models.Education)) (*models.Education, error) {
	from := gofakeit.DateRange(
		time.Now().AddDate(-12, 0, 0), time.Now().AddDate(-4, 0, 0))
	to := from.AddDate(4, 0, 0)

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       fmt.Sprintf("%s University", gofakeit.City()),
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         from,
		To:           &to,
		Description:  gofakeit.Sentence(10),
	}

	for _, override := range overrides {
		override(edu)
	}

	if err := f.db.Create(edu).Error; err != nil {
		return nil, err
	}
	return edu, nil
}

// CreatePost constructs and persists a sample post for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID: user.ID,
		Text:   gofakeit.Paragraph(1, 2, 8, " "),
		Name:   user.Name,
		Avatar: user.Avatar,
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment on the post authored by the user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   gofakeit.Sentence(8),
		Name:   user.Name,
		Avatar: user.Avatar,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from the user on the post.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{
		PostID: post.ID,
		UserID: user.ID,
	}
	return f.db.Create(like).Error
}
