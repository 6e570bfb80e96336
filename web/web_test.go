package web

import (
	"io/fs"
	"testing"
)

func TestTemplatesEmbedded(t *testing.T) {
	templates := GetTemplatesFS()

	want := []string{
		"scoreboard.html",
		"score.html",
		"login.html",
		"admin/layout.html",
		"admin/dashboard.html",
		"admin/competitions.html",
		"admin/stations.html",
		"admin/patrols.html",
		"admin/groups.html",
		"admin/users.html",
		"admin/settings.html",
	}
	for _, name := range want {
		data, err := fs.ReadFile(templates, name)
		if err != nil {
			t.Errorf("template %s missing: %v", name, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("template %s is empty", name)
		}
	}
}

func TestStaticAssetsEmbedded(t *testing.T) {
	static := GetStaticFS()

	want := []string{
		"css/style.css",
		"js/scoreboard.js",
		"js/score.js",
		"js/admin.js",
	}
	for _, name := range want {
		data, err := fs.ReadFile(static, name)
		if err != nil {
			t.Errorf("asset %s missing: %v", name, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("asset %s is empty", name)
		}
	}
}
