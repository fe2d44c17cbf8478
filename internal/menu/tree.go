// Package menu defines the application menu and routes its activations.
package menu

// Identifiers of the custom menu items. They are the only coupling between
// the menu definition and the router.
const (
	IDNew          = "new"
	IDSettings     = "settings"
	IDReload       = "reload"
	IDFullscreen   = "fullscreen"
	IDZoomIn       = "zoom_in"
	IDZoomOut      = "zoom_out"
	IDZoomReset    = "zoom_reset"
	IDCheckUpdates = "check_updates"
	IDDocs         = "docs"
	IDFeedback     = "feedback"
	IDAbout        = "about"
)

// Role says who implements an item. Predefined roles are handled by the
// host toolkit with its standard behavior.
type Role int

const (
	RoleCustom Role = iota
	RoleSeparator
	RoleUndo
	RoleRedo
	RoleCut
	RoleCopy
	RolePaste
	RoleSelectAll
	RoleQuit
)

var roleIDs = map[Role]string{
	RoleUndo:      "undo",
	RoleRedo:      "redo",
	RoleCut:       "cut",
	RoleCopy:      "copy",
	RolePaste:     "paste",
	RoleSelectAll: "select_all",
	RoleQuit:      "quit",
}

// Predefined reports whether the role is implemented by the host.
func (r Role) Predefined() bool {
	_, ok := roleIDs[r]
	return ok
}

// Item is a menu leaf.
type Item struct {
	ID          string
	Label       string
	Accelerator string
	Enabled     bool
	Role        Role
}

// Submenu is a top-level menu.
type Submenu struct {
	Label string
	Items []Item
}

// Tree is the whole menu bar. It is built once at startup and never
// modified afterwards.
type Tree struct {
	Submenus []Submenu
}

// MenuCommand is the immutable identity of an activatable custom item.
type MenuCommand struct {
	ID      string
	Enabled bool
}

func custom(id, label, accel string) Item {
	return Item{ID: id, Label: label, Accelerator: accel, Enabled: true, Role: RoleCustom}
}

func predefined(role Role, label string) Item {
	return Item{ID: roleIDs[role], Label: label, Enabled: true, Role: role}
}

func separator() Item {
	return Item{Role: RoleSeparator}
}

// DefaultTree returns the application menu.
func DefaultTree(appName string) Tree {
	return Tree{Submenus: []Submenu{
		{Label: "Datei", Items: []Item{
			custom(IDNew, "Neuer Text", "CmdOrCtrl+N"),
			separator(),
			custom(IDSettings, "Einstellungen...", "CmdOrCtrl+,"),
			separator(),
			predefined(RoleQuit, "Beenden"),
		}},
		{Label: "Bearbeiten", Items: []Item{
			predefined(RoleUndo, "Rückgängig"),
			predefined(RoleRedo, "Wiederholen"),
			separator(),
			predefined(RoleCut, "Ausschneiden"),
			predefined(RoleCopy, "Kopieren"),
			predefined(RolePaste, "Einfügen"),
			predefined(RoleSelectAll, "Alles auswählen"),
		}},
		{Label: "Ansicht", Items: []Item{
			custom(IDReload, "Neu laden", "CmdOrCtrl+R"),
			separator(),
			custom(IDFullscreen, "Vollbild", "F11"),
			custom(IDZoomIn, "Vergrößern", "CmdOrCtrl+Plus"),
			custom(IDZoomOut, "Verkleinern", "CmdOrCtrl+Minus"),
			custom(IDZoomReset, "Originalgröße", "CmdOrCtrl+0"),
		}},
		{Label: "Hilfe", Items: []Item{
			custom(IDCheckUpdates, "Nach Updates suchen...", ""),
			separator(),
			custom(IDDocs, "Dokumentation", ""),
			custom(IDFeedback, "Feedback senden", ""),
			separator(),
			custom(IDAbout, "Über "+appName, ""),
		}},
	}}
}

// Commands returns the custom items of the tree in menu order.
func (t Tree) Commands() []MenuCommand {
	var out []MenuCommand
	for _, sm := range t.Submenus {
		for _, it := range sm.Items {
			if it.Role == RoleCustom && it.ID != "" {
				out = append(out, MenuCommand{ID: it.ID, Enabled: it.Enabled})
			}
		}
	}
	return out
}

// Find returns the item with the given identifier.
func (t Tree) Find(id string) (Item, bool) {
	if id == "" {
		return Item{}, false
	}
	for _, sm := range t.Submenus {
		for _, it := range sm.Items {
			if it.ID == id {
				return it, true
			}
		}
	}
	return Item{}, false
}
