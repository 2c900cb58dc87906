// Package group provides the read-only group overview.
package group

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	"github.com/GoUserAdmin/GoUserAdmin/internal/dto"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/handler"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/navigation"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/session"
)

const (
	// Path is the base path of the group overview.
	Path = handler.RootPath + "groups"

	// TemplateList is the template for listing groups.
	TemplateList = "groups/list"

	// QuerySearch is the query parameter name for the search term.
	QuerySearch = "search"
)

// Row is one group of the overview.
type Row struct {
	dto.GroupResponse
	Members int64
}

// Service provides the group overview.
type Service struct {
	handler.Service
	api handler.APIClient
}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, api handler.APIClient) {
	if app == nil || cfg == nil || api == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.api = api

	app.Get(Path, s.List)
}

// List shows the groups with their permissions and member counts. The search
// term matches name, description and permission keys case-insensitively.
func (s *Service) List(c *fiber.Ctx) error {
	nav := navigation.NewContext("Groups", navigation.SectionGroups).
		Add("Groups", Path)

	search := strings.TrimSpace(c.Query(QuerySearch))

	groups, err := s.api.ListGroups(c.UserContext())
	if err != nil {
		return handler.APIFailure(err, "list groups")
	}

	counts, err := s.api.CountPerGroup(c.UserContext())
	if err != nil {
		return handler.APIFailure(err, "count users per group")
	}

	members := make(map[int64]int64, len(counts))
	for _, pg := range counts {
		members[pg.GroupID] = pg.UserCount
	}

	rows := make([]Row, 0, len(groups))

	for _, g := range groups {
		if !matches(g, search) {
			continue
		}

		rows = append(rows, Row{GroupResponse: g, Members: members[g.ID]})
	}

	return c.Render(TemplateList, fiber.Map{
		"Navigation": nav,
		"Flash":      session.PopFlash(c),
		"Groups":     rows,
		"Search":     search,
	}, handler.BaseLayout)
}

func matches(g dto.GroupResponse, search string) bool {
	if search == "" {
		return true
	}

	term := strings.ToLower(search)

	if strings.Contains(strings.ToLower(g.Name), term) ||
		strings.Contains(strings.ToLower(g.Description), term) {
		return true
	}

	for _, p := range g.Permissions {
		if strings.Contains(strings.ToLower(p), term) {
			return true
		}
	}

	return false
}
