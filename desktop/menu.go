package main

import (
	"strings"

	wailsmenu "github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"

	"github.com/gruenerator/shell/internal/menu"
)

// buildMenu renders tree as a Wails application menu. Custom items call
// dispatch with their id; the quit role calls quit. Wails has no single
// item roles for the edit actions, so a submenu made only of them becomes
// the platform edit menu.
func buildMenu(tree menu.Tree, dispatch func(id string), quit func()) *wailsmenu.Menu {
	root := wailsmenu.NewMenu()

	for _, sm := range tree.Submenus {
		if editOnly(sm) {
			root.Append(wailsmenu.EditMenu())
			continue
		}

		sub := root.AddSubmenu(sm.Label)
		for _, it := range sm.Items {
			switch {
			case it.Role == menu.RoleSeparator:
				sub.AddSeparator()
			case it.Role == menu.RoleQuit:
				sub.AddText(it.Label, keys.CmdOrCtrl("q"), func(*wailsmenu.CallbackData) { quit() })
			case it.Role == menu.RoleCustom:
				id := it.ID
				item := sub.AddText(it.Label, accelerator(it.Accelerator), func(*wailsmenu.CallbackData) { dispatch(id) })
				item.Disabled = !it.Enabled
			}
		}
	}
	return root
}

func editOnly(sm menu.Submenu) bool {
	found := false
	for _, it := range sm.Items {
		switch it.Role {
		case menu.RoleSeparator:
		case menu.RoleUndo, menu.RoleRedo, menu.RoleCut, menu.RoleCopy, menu.RolePaste, menu.RoleSelectAll:
			found = true
		default:
			return false
		}
	}
	return found
}

// accelerator converts "CmdOrCtrl+Shift+N" style shortcuts. An empty
// string yields nil.
func accelerator(s string) *keys.Accelerator {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "+")
	acc := &keys.Accelerator{}
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "cmdorctrl", "commandorcontrol":
			acc.Modifiers = append(acc.Modifiers, keys.CmdOrCtrlKey)
		case "shift":
			acc.Modifiers = append(acc.Modifiers, keys.ShiftKey)
		case "alt", "option", "optionoralt":
			acc.Modifiers = append(acc.Modifiers, keys.OptionOrAltKey)
		case "ctrl", "control":
			acc.Modifiers = append(acc.Modifiers, keys.ControlKey)
		}
	}

	key := strings.ToLower(parts[len(parts)-1])
	switch key {
	case "plus":
		key = "+"
	case "minus":
		key = "-"
	}
	acc.Key = key
	return acc
}
