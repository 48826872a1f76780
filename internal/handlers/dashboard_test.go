package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/olangriffin/fyp-helpdesk/internal/constants"
	"github.com/olangriffin/fyp-helpdesk/internal/models"
	"github.com/olangriffin/fyp-helpdesk/internal/repository"
	"github.com/olangriffin/fyp-helpdesk/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDashboardTestEnv(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	orgService := services.NewOrganizationService(repository.NewOrganizationRepository(db))
	ticketService := services.NewTicketService(repository.NewTicketRepository(db))
	metricsService := services.NewMetricsService(
		repository.NewUserRepository(db),
		repository.NewOrganizationRepository(db),
		repository.NewTicketRepository(db),
	)
	handler := NewDashboardHandler(orgService, ticketService, metricsService)

	// The auth middleware is exercised separately; these routes load the user
	// from a path param and inject it so the tests focus on the view payloads.
	loadUser := func(c *gin.Context) {
		var user models.User
		if err := db.Where("id = ?", c.Param("userID")).First(&user).Error; err != nil {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Set(constants.ContextKeyUser, &user)
	}

	r := gin.New()
	r.GET("/", handler.Landing)
	r.GET("/landing/:userID", loadUser, handler.Landing)
	r.GET("/authportal", handler.AuthPortal)
	r.GET("/desk", handler.Desk)
	r.GET("/desk/:userID", loadUser, handler.Desk)
	r.GET("/home/:userID", loadUser, handler.Home)
	r.GET("/workspace/:userID", loadUser, handler.Workspace)
	r.GET("/manager/:userID", loadUser, handler.Manager)
	r.GET("/admin/overview", handler.AdminOverview)
	r.GET("/admin/users", handler.AdminUsers)

	return r, db
}

func getJSON(t *testing.T, r *gin.Engine, path string) map[string]any {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestDashboard_LandingAnonymous(t *testing.T) {
	r, _ := setupDashboardTestEnv(t)

	body := getJSON(t, r, "/")
	require.Equal(t, "SmartDesk Helpdesk", body["title"])
	require.Len(t, body["roles"].([]any), 3)
}

func TestDashboard_LandingRedirectsAuthenticated(t *testing.T) {
	r, db := setupDashboardTestEnv(t)

	user := models.User{Email: "a@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "requester"}
	require.NoError(t, db.Create(&user).Error)

	req := httptest.NewRequest(http.MethodGet, "/landing/"+user.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/workspace", w.Header().Get("Location"))
}

func TestDashboard_AuthPortalMode(t *testing.T) {
	r, _ := setupDashboardTestEnv(t)

	body := getJSON(t, r, "/authportal")
	require.Equal(t, "login", body["mode"])

	body = getJSON(t, r, "/authportal?mode=signup")
	require.Equal(t, "signup", body["mode"])

	// Unknown modes fall back to login.
	body = getJSON(t, r, "/authportal?mode=admin")
	require.Equal(t, "login", body["mode"])
}

func TestDashboard_Desk(t *testing.T) {
	r, db := setupDashboardTestEnv(t)

	body := getJSON(t, r, "/desk")
	require.Nil(t, body["current_user"])
	require.Len(t, body["issue_types"].([]any), len(models.IssueTypes))
	require.Len(t, body["statuses"].([]any), 4)

	user := models.User{Email: "a@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "requester"}
	require.NoError(t, db.Create(&user).Error)

	body = getJSON(t, r, "/desk/"+user.ID)
	require.Equal(t, "a@example.com", body["current_user"].(map[string]any)["email"])
}

func TestDashboard_Home(t *testing.T) {
	r, db := setupDashboardTestEnv(t)

	user := models.User{Email: "a@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "it_manager"}
	require.NoError(t, db.Create(&user).Error)

	body := getJSON(t, r, "/home/"+user.ID)
	require.Equal(t, "/manager", body["role_home"])
	require.Equal(t, "a@example.com", body["current_user"].(map[string]any)["email"])
}

func TestDashboard_Workspace(t *testing.T) {
	r, db := setupDashboardTestEnv(t)

	user := models.User{Email: "a@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "requester"}
	require.NoError(t, db.Create(&user).Error)

	org := models.Organization{Name: "Acme", Slug: "acme"}
	require.NoError(t, db.Create(&org).Error)
	require.NoError(t, db.Create(&models.Membership{
		UserID:         user.ID,
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
		RequesterID: &user.ID,
	}).Error)

	body := getJSON(t, r, "/workspace/"+user.ID)

	organization := body["organization"].(map[string]any)
	require.Equal(t, "acme", organization["slug"])

	membership := body["membership"].(map[string]any)
	require.Equal(t, "requester", membership["role"])
	require.Equal(t, org.ID, membership["organization_id"])

	summary := body["summary"].(map[string]any)
	require.Equal(t, float64(1), summary["open"])
	require.Equal(t, float64(1), summary["total"])

	require.Len(t, body["tickets"].([]any), 1)
}

func TestDashboard_WorkspaceWithoutMembership(t *testing.T) {
	r, db := setupDashboardTestEnv(t)

	user := models.User{Email: "solo@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "requester"}
	require.NoError(t, db.Create(&user).Error)

	body := getJSON(t, r, "/workspace/"+user.ID)
	require.Nil(t, body["organization"])
	require.Nil(t, body["membership"])
	require.Equal(t, float64(0), body["summary"].(map[string]any)["total"])
}

func TestDashboard_Manager(t *testing.T) {
	r, db := setupDashboardTestEnv(t)

	user := models.User{Email: "mgr@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "it_manager"}
	require.NoError(t, db.Create(&user).Error)

	org := models.Organization{Name: "Acme", Slug: "acme", Plan: "pro"}
	require.NoError(t, db.Create(&org).Error)
	require.NoError(t, db.Create(&models.Membership{
		UserID:         user.ID,
		OrganizationID: org.ID,
		Role:           "it_manager",
		IsOwner:        true,
		IsActive:       true,
	}).Error)

	require.NoError(t, db.Create(&models.Ticket{
		Subject:        "VPN dropouts",
		Description:    "The vpn client disconnects repeatedly.",
		IssueType:      "network",
		Status:         models.TicketStatusResolved,
		Priority:       models.TicketPriorityMedium,
		OrganizationID: &org.ID,
	}).Error)

	body := getJSON(t, r, "/manager/"+user.ID)
	require.Equal(t, "pro", body["organization_plan"])
	require.Equal(t, true, body["membership"].(map[string]any)["is_owner"])
	require.Equal(t, float64(1), body["summary"].(map[string]any)["total"])
	require.Equal(t, float64(1), body["recent_resolved"])
	require.Len(t, body["tickets"].([]any), 1)
}

func TestDashboard_ManagerWithoutMembership(t *testing.T) {
	r, db := setupDashboardTestEnv(t)

	user := models.User{Email: "mgr@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "it_manager"}
	require.NoError(t, db.Create(&user).Error)

	body := getJSON(t, r, "/manager/"+user.ID)
	require.Nil(t, body["organization"])
	require.Equal(t, models.DefaultPlan, body["organization_plan"])
	require.Equal(t, float64(0), body["recent_resolved"])
}

func TestDashboard_AdminOverview(t *testing.T) {
	r, db := setupDashboardTestEnv(t)

	user := models.User{Email: "a@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "requester", EmailVerified: true}
	require.NoError(t, db.Create(&user).Error)

	org := models.Organization{Name: "Acme", Slug: "acme"}
	require.NoError(t, db.Create(&org).Error)
	require.NoError(t, db.Create(&models.Membership{
		UserID:         user.ID,
		OrganizationID: org.ID,
		Role:           "requester",
		IsActive:       true,
	}).Error)

	body := getJSON(t, r, "/admin/overview")

	overview := body["overview"].(map[string]any)
	require.Equal(t, float64(1), overview["users"])
	require.Equal(t, float64(1), overview["verified_users"])
	require.Equal(t, float64(1), overview["organizations"])

	organizations := body["organizations"].([]any)
	require.Len(t, organizations, 1)
	require.Equal(t, float64(1), organizations[0].(map[string]any)["member_count"])
}

func TestDashboard_AdminUsers(t *testing.T) {
	r, db := setupDashboardTestEnv(t)

	user := models.User{Email: "a@example.com", PasswordHash: "x", PasswordSalt: "x", PrimaryRole: "requester"}
	require.NoError(t, db.Create(&user).Error)

	body := getJSON(t, r, "/admin/users")

	users := body["users"].([]any)
	require.Len(t, users, 1)
	require.Equal(t, "a@example.com", users[0].(map[string]any)["email"])
	require.Equal(t, float64(0), users[0].(map[string]any)["member_count"])
}
