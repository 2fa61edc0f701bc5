package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	vars := map[string]string{"projectName": "demo", "author": "Jo"}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "single placeholder", in: "# {{projectName}}", want: "# demo"},
		{name: "spaces inside delimiters", in: "{{ projectName }}!", want: "demo!"},
		{name: "every occurrence", in: "{{projectName}}/{{projectName}}", want: "demo/demo"},
		{name: "multiple names", in: "{{projectName}} by {{author}}", want: "demo by Jo"},
		{name: "unknown left unchanged", in: "{{ unknown }} {{projectName}}", want: "{{ unknown }} demo"},
		{name: "malformed passes through", in: "{{project-name}} {{projectName", want: "{{project-name}} {{projectName"},
		{name: "no placeholders", in: "plain text\n", want: "plain text\n"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.in, vars))
		})
	}
}

func TestRender_NoVarsIsIdentity(t *testing.T) {
	in := "{{projectName}} \x00 binary-ish \xff"
	assert.Equal(t, in, Render(in, nil))
}

func TestRender_ValueIsNotReexpanded(t *testing.T) {
	vars := map[string]string{"projectName": "{{author}}", "author": "Jo"}
	assert.Equal(t, "{{author}}", Render("{{projectName}}", vars))
}

func TestNew_CustomDelimiters(t *testing.T) {
	r := New("<%=", "%>")
	vars := map[string]string{"projectName": "demo"}

	assert.Equal(t, `"name": "demo"`, r.Render(`"name": "<%= projectName %>"`, vars))
	assert.Equal(t, "{{projectName}}", r.Render("{{projectName}}", vars))
}

func TestNew_EmptyDelimitersFallBack(t *testing.T) {
	r := New("", "")
	assert.Equal(t, "demo", r.Render("{{projectName}}", map[string]string{"projectName": "demo"}))
}

func TestNames(t *testing.T) {
	r := New(DefaultLeft, DefaultRight)
	got := r.Names("{{projectName}} {{ author }} {{projectName}} {{bad-name}}")
	assert.Equal(t, []string{"projectName", "author"}, got)
}

func TestVars_BuiltinsWin(t *testing.T) {
	vars := Vars("my_app", "basic", "Jo", "https://example.com", "2026", map[string]string{
		"projectName": "shadowed",
		"license":     "MIT",
	})

	assert.Equal(t, "my_app", vars[VarProjectName])
	assert.Equal(t, "basic", vars[VarTemplateName])
	assert.Equal(t, "MIT", vars["license"])
	assert.Equal(t, "2026", vars[VarYear])
}
