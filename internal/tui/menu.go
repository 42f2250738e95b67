package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

type MenuItem struct {
	Label   string
	Submenu *Menu
	Action  func() tea.Cmd
}

type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

/* ----------------------------------------
	MENU TREE DEFINITION
---------------------------------------- */

func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		item := &menu.Items[i]

		if item.Label == "Back" {
			item.Submenu = parent
			continue
		}

		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

func buildMenuTree(m *Model) *Menu {
	root := &Menu{
		Title: "Inventory",
		Items: []MenuItem{
			{Label: "Add Product", Action: open(screenProductForm)},
			{Label: "Add Buyer", Action: open(screenBuyerForm)},
			{Label: "Delete Products", Action: open(screenProductList)},
			{Label: "Info ->", Submenu: loadInfo(m)},
			{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
		},
	}

	linkParents(root, nil)

	return root
}

/* ----------------------------------------
	LOAD MENUS
---------------------------------------- */

func loadInfo(m *Model) *Menu {
	return &Menu{
		Title: "Info",
		Items: []MenuItem{
			{Label: "Test Connection", Action: m.pingCmd},
			{Label: "Record Counts", Action: m.statsCmd},
			{Label: "Back"},
		},
	}
}

func open(s screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return openMsg(s) }
	}
}
