package page

import "strings"

// Submenu is a nested sidebar entry.
type Submenu struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

// Menu is a sidebar entry.
type Menu struct {
	Href     string    `json:"href"`
	Label    string    `json:"label"`
	Active   bool      `json:"active"`
	Submenus []Submenu `json:"submenus,omitempty"`
}

// Group is a labelled block of sidebar entries. The last group has no label.
type Group struct {
	Label string `json:"label"`
	Menus []Menu `json:"menus"`
}

// MenuList returns the sidebar for pathname. Plain entries are active on an
// exact match; entries with submenus are active anywhere below their href.
func MenuList(pathname string) []Group {
	exact := func(href, label string) Menu {
		return Menu{Href: href, Label: label, Active: pathname == href}
	}
	nested := func(href, label string, subs ...Submenu) Menu {
		return Menu{Href: href, Label: label, Active: strings.HasPrefix(pathname, href), Submenus: subs}
	}

	return []Group{
		{
			Label: "Assets",
			Menus: []Menu{
				exact("/vehicles", "Vehicles"),
				exact("/sim-cards", "SIM Cards"),
				exact("/battery-packs", "Battery Packs"),
				exact("/chargers", "Chargers"),
				nested("/position-tracker", "Position Tracker",
					Submenu{Href: "/position-tracker/can", Label: "Position Trackers CAN"},
					Submenu{Href: "/position-tracker/basic", Label: "Position Tracker Basic"},
				),
				exact("/swapping-stations", "Swapping Stations"),
				exact("/all-sets", "All Sets"),
			},
		},
		{
			Label: "Dashboards",
			Menus: []Menu{
				nested("/dashboards", "Dashboards",
					Submenu{Href: "/dashboards/battery-analytics", Label: "Battery Analytics"},
					Submenu{Href: "/dashboards/custom", Label: "Custom Dashboards"},
					Submenu{Href: "/dashboards/non-can", Label: "Non-CAN Dashboard"},
				),
			},
		},
		{
			Menus: []Menu{
				exact("/locations", "Locations"),
				exact("/reports", "Reports"),
				exact("/users", "Users"),
				exact("/support", "Support"),
			},
		},
	}
}

// ActiveMenu returns the active entry of the sidebar for pathname.
func ActiveMenu(pathname string) (Menu, bool) {
	for _, g := range MenuList(pathname) {
		for _, m := range g.Menus {
			if m.Active {
				return m, true
			}
		}
	}
	return Menu{}, false
}
