package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/lumehq/lume-api/internal/models"
	"github.com/lumehq/lume-api/internal/services"
)

// AdminHandler renders the user admin pages: listing with search, invite
// form, and delete. Pure display glue over the profile service.
type AdminHandler struct {
	profileService ProfileServiceInterface
}

func NewAdminHandler(profileService ProfileServiceInterface) *AdminHandler {
	return &AdminHandler{profileService: profileService}
}

func (h *AdminHandler) Index(c *drift.Context) {
	users, err := h.profileService.All(context.Background())
	if err != nil {
		h.renderError(c, "Failed to load users")
		return
	}

	h.renderUserList(c, users, "")
}

func (h *AdminHandler) Search(c *drift.Context) {
	query := c.Request.FormValue("search")

	users, err := h.profileService.Search(context.Background(), query, 0)
	if err != nil {
		h.renderError(c, "Search failed")
		return
	}

	h.renderUserList(c, users, query)
}

func (h *AdminHandler) InviteForm(c *drift.Context) {
	page := `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invite New User</title>
</head>
<body>
    <h1>Invite New User</h1>
    <form method="post" action="/admin/users/invite">
        <input name="email" type="email" placeholder="Email" required>
        <input name="name" placeholder="Name" required>
        <select name="role">
            <option value="member">Member</option>
            <option value="admin">Admin</option>
        </select>
        <button type="submit">Invite</button>
    </form>
    <a href="/admin/users">Back to users</a>
</body>
</html>`

	_ = c.HTML(200, page)
}

func (h *AdminHandler) Invite(c *drift.Context) {
	info := services.InviteInput{
		Email: c.Request.FormValue("email"),
		Name:  c.Request.FormValue("name"),
		Role:  c.Request.FormValue("role"),
	}
	if info.Email == "" || info.Name == "" {
		h.renderError(c, "Email and name are required")
		return
	}
	if info.Role == "" {
		info.Role = models.RoleMember
	}

	user, err := h.profileService.Invite(context.Background(), info)
	if err != nil {
		h.renderError(c, err.Error())
		return
	}

	h.renderMessage(c, fmt.Sprintf("Invited %s. Their one-time password is on its way.", html.EscapeString(user.Email)))
}

func (h *AdminHandler) EditForm(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.renderError(c, "Invalid user id")
		return
	}

	user, err := h.profileService.Find(context.Background(), userID)
	if err != nil {
		h.renderError(c, "User not found")
		return
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Edit User</title>
</head>
<body>
    <h1>Edit User</h1>
    <form method="post" action="/admin/users/%s/edit">
        <input name="email" type="email" value="%s" required>
        <input name="name" value="%s" required>
        <label><input name="terms_and_cond" type="checkbox" value="1"> Agrees to the terms and conditions</label>
        <button type="submit">Save</button>
    </form>
    <a href="/admin/users">Back to users</a>
</body>
</html>`, user.ID, html.EscapeString(user.Email), html.EscapeString(user.Name))

	_ = c.HTML(200, page)
}

func (h *AdminHandler) Edit(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.renderError(c, "Invalid user id")
		return
	}

	inputs := services.ProfileUpdate{
		Meta: map[string]any{
			models.TermsKey: c.Request.FormValue(models.TermsKey),
		},
	}
	if email := c.Request.FormValue("email"); email != "" {
		inputs.Email = &email
	}
	if name := c.Request.FormValue("name"); name != "" {
		inputs.Name = &name
	}

	updated, err := h.profileService.Update(context.Background(), userID, inputs)
	if err != nil {
		h.renderError(c, err.Error())
		return
	}
	if !updated {
		h.renderError(c, "User not found")
		return
	}

	h.renderMessage(c, "User updated")
}

func (h *AdminHandler) Delete(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.renderError(c, "Invalid user id")
		return
	}

	deleted, err := h.profileService.Destroy(context.Background(), userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileDeletionFailed) {
			h.renderError(c, err.Error())
			return
		}
		h.renderError(c, "Failed to delete user")
		return
	}
	if !deleted {
		h.renderError(c, "User not found")
		return
	}

	h.renderMessage(c, "User deleted")
}

func (h *AdminHandler) renderUserList(c *drift.Context, users []models.User, query string) {
	var rows strings.Builder
	for _, user := range users {
		rows.WriteString(fmt.Sprintf(`
        <tr>
            <td>%s</td>
            <td>
                <a href="/admin/users/%s/edit">Edit</a>
                <a href="/admin/users/%s/delete" onclick="return confirm('Are you sure you want to delete this user?')">Delete</a>
            </td>
        </tr>`, html.EscapeString(user.Email), user.ID, user.ID))
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>User Admin</title>
</head>
<body>
    <h1>User Admin</h1>
    <a href="/admin/users/invite">Invite New User</a>
    <form method="post" action="/admin/users/search">
        <input name="search" placeholder="Search" value="%s">
    </form>
    <table>
    <thead>
        <tr><th>Email</th><th>Actions</th></tr>
    </thead>
    <tbody>%s
    </tbody>
    </table>
    <a href="/dashboard">Dashboard</a>
</body>
</html>`, html.EscapeString(query), rows.String())

	_ = c.HTML(200, page)
}

func (h *AdminHandler) renderMessage(c *drift.Context, message string) {
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>User Admin</title>
</head>
<body>
    <h1>%s</h1>
    <a href="/admin/users">Back to users</a>
</body>
</html>`, message)

	_ = c.HTML(200, page)
}

func (h *AdminHandler) renderError(c *drift.Context, message string) {
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Error</title>
</head>
<body>
    <h1>Error</h1>
    <p>%s</p>
    <a href="/admin/users">Back to users</a>
</body>
</html>`, html.EscapeString(message))

	_ = c.HTML(400, page)
}
