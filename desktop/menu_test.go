package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	wailsmenu "github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"

	"github.com/gruenerator/shell/internal/menu"
)

func findItem(m *wailsmenu.Menu, label string) *wailsmenu.MenuItem {
	for _, it := range m.Items {
		if it.Label == label {
			return it
		}
	}
	return nil
}

func TestBuildMenu(t *testing.T) {
	var dispatched []string
	quits := 0
	m := buildMenu(menu.DefaultTree("Grünerator"), func(id string) { dispatched = append(dispatched, id) }, func() { quits++ })

	require.Len(t, m.Items, 4)
	assert.Equal(t, "Datei", m.Items[0].Label)
	assert.Equal(t, "Ansicht", m.Items[2].Label)
	assert.Equal(t, "Hilfe", m.Items[3].Label)

	datei := m.Items[0].SubMenu
	require.NotNil(t, datei)
	neu := findItem(datei, "Neuer Text")
	require.NotNil(t, neu)
	neu.Click(&wailsmenu.CallbackData{MenuItem: neu})

	beenden := findItem(datei, "Beenden")
	require.NotNil(t, beenden)
	beenden.Click(&wailsmenu.CallbackData{MenuItem: beenden})

	about := findItem(m.Items[3].SubMenu, "Über Grünerator")
	require.NotNil(t, about)
	about.Click(&wailsmenu.CallbackData{MenuItem: about})

	assert.Equal(t, []string{menu.IDNew, menu.IDAbout}, dispatched)
	assert.Equal(t, 1, quits)
}

func TestEditOnly(t *testing.T) {
	tree := menu.DefaultTree("x")
	assert.False(t, editOnly(tree.Submenus[0]))
	assert.True(t, editOnly(tree.Submenus[1]))
	assert.False(t, editOnly(menu.Submenu{Label: "leer"}))
}

func TestAccelerator(t *testing.T) {
	assert.Nil(t, accelerator(""))

	acc := accelerator("CmdOrCtrl+N")
	assert.Equal(t, "n", acc.Key)
	assert.Equal(t, []keys.Modifier{keys.CmdOrCtrlKey}, acc.Modifiers)

	assert.Equal(t, "+", accelerator("CmdOrCtrl+Plus").Key)
	assert.Equal(t, "-", accelerator("CmdOrCtrl+Minus").Key)

	acc = accelerator("F11")
	assert.Equal(t, "f11", acc.Key)
	assert.Empty(t, acc.Modifiers)
}
