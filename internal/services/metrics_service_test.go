package services

import (
	"testing"
	"time"

	"github.com/olangriffin/fyp-helpdesk/internal/models"
	"github.com/olangriffin/fyp-helpdesk/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMetricsService(t *testing.T) (*MetricsService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Membership{},
		&models.Ticket{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	svc := NewMetricsService(
		repository.NewUserRepository(db),
		repository.NewOrganizationRepository(db),
		repository.NewTicketRepository(db),
	)
	return svc, db
}

func TestMetricsService_Overview(t *testing.T) {
	svc, db := setupMetricsService(t)

	users := []models.User{
		{Email: "a@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "requester", EmailVerified: true},
		{Email: "b@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "requester", EmailVerified: true},
		{Email: "c@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "it_manager"},
	}
	for i := range users {
		require.NoError(t, db.Create(&users[i]).Error)
	}

	org := models.Organization{Name: "Acme", Slug: "acme"}
	require.NoError(t, db.Create(&org).Error)
	require.NoError(t, db.Create(&models.Membership{
		UserID:         users[0].ID,
		OrganizationID: org.ID,
		Role:           "requester",
		IsActive:       true,
	}).Error)

	require.NoError(t, db.Create(&models.Ticket{
		Subject:     "Monitor flickering",
		Description: "External monitor flickers when docked.",
		IssueType:   "hardware",
		Status:      models.TicketStatusOpen,
		Priority:    models.TicketPriorityMedium,
	}).Error)

	overview, err := svc.Overview()
	require.NoError(t, err)
	require.Equal(t, int64(3), overview.Users)
	require.Equal(t, int64(2), overview.VerifiedUsers)
	require.Equal(t, int64(1), overview.Organizations)
	require.Equal(t, int64(1), overview.Memberships)
	require.Equal(t, int64(1), overview.Tickets)
}

func TestMetricsService_RecentSignups(t *testing.T) {
	svc, db := setupMetricsService(t)

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for i, email := range emails {
		user := models.User{Email: email, PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "requester"}
		require.NoError(t, db.Create(&user).Error)
		// Space creation times apart so ordering is deterministic.
		createdAt := time.Now().UTC().Add(-time.Duration(len(emails)-i) * time.Minute)
		require.NoError(t, db.Model(&user).UpdateColumn("created_at", createdAt).Error)
	}

	recent, err := svc.RecentSignups(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "c@example.com", recent[0].Email)
	require.Equal(t, "b@example.com", recent[1].Email)
}

func TestMetricsService_OrganizationsWithMemberCounts(t *testing.T) {
	svc, db := setupMetricsService(t)

	orgA := models.Organization{Name: "Acme", Slug: "acme"}
	orgB := models.Organization{Name: "Beta", Slug: "beta"}
	require.NoError(t, db.Create(&orgA).Error)
	require.NoError(t, db.Create(&orgB).Error)

	users := []models.User{
		{Email: "a@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "requester"},
		{Email: "b@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "requester"},
	}
	for i := range users {
		require.NoError(t, db.Create(&users[i]).Error)
		require.NoError(t, db.Create(&models.Membership{
			UserID:         users[i].ID,
			OrganizationID: orgA.ID,
			Role:           "requester",
			IsActive:       true,
		}).Error)
	}

	rows, err := svc.OrganizationsWithMemberCounts()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Organization.Slug] = row.MemberCount
	}
	require.Equal(t, int64(2), counts["acme"])
	require.Equal(t, int64(0), counts["beta"])
}

func TestMetricsService_UsersWithMembershipCounts(t *testing.T) {
	svc, db := setupMetricsService(t)

	user := models.User{Email: "a@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "requester"}
	require.NoError(t, db.Create(&user).Error)

	for _, slug := range []string{"acme", "beta"} {
		org := models.Organization{Name: slug, Slug: slug}
		require.NoError(t, db.Create(&org).Error)
		require.NoError(t, db.Create(&models.Membership{
			UserID:         user.ID,
			OrganizationID: org.ID,
			Role:           "requester",
			IsActive:       true,
		}).Error)
	}

	rows, err := svc.UsersWithMembershipCounts()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(2), rows[0].MemberCount)
}
