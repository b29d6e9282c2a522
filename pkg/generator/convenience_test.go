package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateSnippet(t *testing.T) {
	out, err := GenerateSnippet(GenerateSnippetOptions{
		Spec:   "../../testdata/graph.yaml",
		Method: "DELETE",
		URL:    "/v1.0/users/{user-id}",
	})
	if err != nil {
		t.Fatalf("GenerateSnippet failed: %v", err)
	}
	if !strings.Contains(out, `await graphClient.Users["user-id"].DeleteAsync();`) {
		t.Errorf("unexpected snippet:\n%s", out)
	}

	out, err = GenerateSnippet(GenerateSnippetOptions{
		Spec:     "../../testdata/graph.yaml",
		Method:   "GET",
		URL:      serviceRoot + "/me",
		Language: "py",
	})
	if err != nil {
		t.Fatalf("GenerateSnippet failed: %v", err)
	}
	if !strings.Contains(out, "result = await graph_client.me.get()") {
		t.Errorf("unexpected snippet:\n%s", out)
	}
}

func TestGenerateSnippetFromConfigFile(t *testing.T) {
	spec, err := filepath.Abs("../../testdata/graph.yaml")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "snippetgen.yaml")
	content := "spec: " + spec + "\nlanguages: [typescript]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := GenerateSnippet(GenerateSnippetOptions{ConfigPath: path, Method: "GET", URL: serviceRoot + "/users", Language: "ts"})
	if err != nil {
		t.Fatalf("GenerateSnippet failed: %v", err)
	}
	if !strings.Contains(out, "let result = await graphServiceClient.users.get();") {
		t.Errorf("unexpected snippet:\n%s", out)
	}

	snippets, err := GenerateFromConfig(path, &Request{Method: "GET", URL: serviceRoot + "/users"})
	if err != nil {
		t.Fatalf("GenerateFromConfig failed: %v", err)
	}
	if _, ok := snippets["typescript"]; !ok || len(snippets) != 1 {
		t.Errorf("snippets = %v", snippets)
	}
}

func TestGenerateSnippetRequiresSpec(t *testing.T) {
	if _, err := GenerateSnippet(GenerateSnippetOptions{Method: "GET", URL: "/me"}); err == nil {
		t.Errorf("expected an error without a description")
	}
}

func TestValidateSpecAndLanguages(t *testing.T) {
	if err := ValidateSpec("../../testdata/graph.yaml"); err != nil {
		t.Errorf("ValidateSpec failed: %v", err)
	}
	if err := ValidateSpec("../../testdata/missing.yaml"); err == nil {
		t.Errorf("expected an error for a missing file")
	}
	expected := []string{"csharp", "go", "python", "typescript"}
	got := Languages()
	if strings.Join(got, ",") != strings.Join(expected, ",") {
		t.Errorf("Languages() = %v, expected %v", got, expected)
	}
}
