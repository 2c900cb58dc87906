// Package navigation holds the page title, active menu section and breadcrumbs of a rendered page.
package navigation

// Menu sections of the front-end.
const (
	SectionDashboard = "dashboard"
	SectionUsers     = "users"
	SectionGroups    = "groups"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	PageTitle     string
	ActiveSection string
	Breadcrumbs   []BreadcrumbItem
}

// NewContext creates a navigation context whose trail starts at Home.
func NewContext(pageTitle, activeSection string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		Breadcrumbs:   []BreadcrumbItem{{Title: "Home", URL: "/", Active: true}},
	}
}

// Add appends a breadcrumb. The last breadcrumb is always the active one.
func (c *Context) Add(title, url string) *Context {
	for i := range c.Breadcrumbs {
		c.Breadcrumbs[i].Active = false
	}

	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: true,
	})

	return c
}

// IsSectionActive checks if the given menu section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
