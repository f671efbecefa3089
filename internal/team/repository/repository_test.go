package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	studentModel "github.com/mentorhub/teamformation/internal/student/model"
	teamModel "github.com/mentorhub/teamformation/internal/team/model"
)

type testStudent struct {
	StudentID string    `gorm:"primaryKey;column:student_id"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;not null;uniqueIndex"`
	RollNo    string    `gorm:"column:roll_no;not null;uniqueIndex"`
	TeamID    *string   `gorm:"column:team_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (testStudent) TableName() string {
	return "students"
}

type testTeam struct {
	TeamID    string    `gorm:"primaryKey;column:team_id"`
	TeamName  string    `gorm:"column:team_name;not null;uniqueIndex"`
	LeadID    string    `gorm:"column:lead_id;not null"`
	MentorID  *string   `gorm:"column:mentor_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (testTeam) TableName() string {
	return "teams"
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&testStudent{}, &testTeam{})
	require.NoError(t, err)

	return db
}

func seedStudent(t *testing.T, db *gorm.DB, id, name, rollNo string, teamID *string) {
	t.Helper()
	err := db.Create(&testStudent{
		StudentID: id,
		Name:      name,
		Email:     id + "@example.com",
		RollNo:    rollNo,
		TeamID:    teamID,
	}).Error
	require.NoError(t, err)
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db)

		team := &teamModel.Team{
			TeamID:   "team-1",
			TeamName: "Rocket",
			LeadID:   "s1",
		}
		err := repo.Create(ctx, team)

		require.NoError(t, err)
		assert.False(t, team.CreatedAt.IsZero())

		stored, err := repo.GetByID(ctx, "team-1")
		require.NoError(t, err)
		assert.Equal(t, "Rocket", stored.TeamName)
		assert.Equal(t, "s1", stored.LeadID)
	})

	t.Run("duplicate team name", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db)

		require.NoError(t, repo.Create(ctx, &teamModel.Team{
			TeamID: "team-1", TeamName: "Rocket", LeadID: "s1",
		}))

		err := repo.Create(ctx, &teamModel.Team{
			TeamID: "team-2", TeamName: "Rocket", LeadID: "s2",
		})

		assert.ErrorIs(t, err, teamModel.ErrTeamExists)
	})
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db)

		team, err := repo.GetByID(ctx, "missing")

		assert.Nil(t, team)
		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
	})
}

func TestRepository_GetByName(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db)
		require.NoError(t, repo.Create(ctx, &teamModel.Team{
			TeamID: "team-1", TeamName: "Rocket", LeadID: "s1",
		}))

		team, err := repo.GetByName(ctx, "Rocket")

		require.NoError(t, err)
		assert.Equal(t, "team-1", team.TeamID)
	})

	t.Run("not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db)

		team, err := repo.GetByName(ctx, "missing")

		assert.Nil(t, team)
		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
	})
}

func TestRepository_GetMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("orders by roll number", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db)
		teamID := "team-1"
		seedStudent(t, db, "s2", "Bob", "21CS002", &teamID)
		seedStudent(t, db, "s1", "Alice", "21CS001", &teamID)
		seedStudent(t, db, "s3", "Carol", "21CS003", nil)

		members, err := repo.GetMembers(ctx, teamID)

		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "s1", members[0].StudentID)
		assert.Equal(t, "s2", members[1].StudentID)
	})

	t.Run("empty team yields empty slice", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db)

		members, err := repo.GetMembers(ctx, "team-1")

		require.NoError(t, err)
		assert.Empty(t, members)
	})
}

func TestRepository_CountMembers(t *testing.T) {
	ctx := context.Background()

	db := setupTestDB(t)
	repo := New(db)
	teamID := "team-1"
	seedStudent(t, db, "s1", "Alice", "21CS001", &teamID)
	seedStudent(t, db, "s2", "Bob", "21CS002", &teamID)
	seedStudent(t, db, "s3", "Carol", "21CS003", nil)

	count, err := repo.CountMembers(ctx, teamID)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRepository_AddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db)
		seedStudent(t, db, "s1", "Alice", "21CS001", nil)

		err := repo.AddMember(ctx, "team-1", "s1")

		require.NoError(t, err)
		student, err := repo.GetStudent(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, student.TeamID)
		assert.Equal(t, "team-1", *student.TeamID)
	})

	t.Run("already in a team", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db)
		otherTeam := "team-2"
		seedStudent(t, db, "s1", "Alice", "21CS001", &otherTeam)

		err := repo.AddMember(ctx, "team-1", "s1")

		assert.ErrorIs(t, err, teamModel.ErrAlreadyInTeam)
	})

	t.Run("student not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db)

		err := repo.AddMember(ctx, "team-1", "missing")

		assert.ErrorIs(t, err, studentModel.ErrStudentNotFound)
	})
}
