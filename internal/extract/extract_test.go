package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page.md", `# Heading

<quiz>
What is 2+2?
- [x] 4
- [ ] 3
</quiz>

some prose

<quiz>
broken block without answers
</quiz>

<quiz>
Second?
- [x] yes
- [x] also yes
- [ ] no
</quiz>
`)

	quizzes, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if len(quizzes) != 2 {
		t.Fatalf("got %d quizzes, want 2 (broken block dropped)", len(quizzes))
	}
	if quizzes[0].SourceFile != path || quizzes[1].SourceFile != path {
		t.Error("source file not recorded")
	}
	if quizzes[0].SourceLine != 3 {
		t.Errorf("first quiz source line = %d, want 3", quizzes[0].SourceLine)
	}
	if quizzes[0].SourceLine >= quizzes[1].SourceLine {
		t.Error("source lines must follow document order")
	}
	if !quizzes[1].IsMultipleChoice() {
		t.Error("second quiz should be multiple choice")
	}
}

func TestFromFileMasksCodeExamples(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page.md", "```\n<quiz>\nnot a quiz\n- [x] nope\n</quiz>\n```\n")

	quizzes, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if len(quizzes) != 0 {
		t.Errorf("fenced example must not extract, got %d quizzes", len(quizzes))
	}
}

func TestFromDirectoryOrdering(t *testing.T) {
	dir := t.TempDir()
	// Written out of lexicographic order on purpose.
	writeFile(t, dir, "c.md", "<quiz>\nC?\n- [x] a\n</quiz>")
	writeFile(t, dir, "a.md", "<quiz>\nA1?\n- [x] a\n</quiz>\n<quiz>\nA2?\n- [x] a\n</quiz>")
	writeFile(t, dir, "b/nested.md", "<quiz>\nB?\n- [x] a\n</quiz>")
	writeFile(t, dir, "ignored.txt", "<quiz>\nX?\n- [x] a\n</quiz>")

	c, err := FromDirectory(dir, true, "*.md")
	if err != nil {
		t.Fatalf("FromDirectory: %v", err)
	}
	if c.TotalQuestions() != 4 {
		t.Fatalf("got %d quizzes, want 4", c.TotalQuestions())
	}
	wantOrder := []string{"A1?", "A2?", "B?", "C?"}
	for i, want := range wantOrder {
		if c.Quizzes[i].Question != want {
			t.Errorf("quiz %d = %q, want %q", i, c.Quizzes[i].Question, want)
		}
	}
}

func TestFromDirectoryNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.md", "<quiz>\nTop?\n- [x] a\n</quiz>")
	writeFile(t, dir, "sub/deep.md", "<quiz>\nDeep?\n- [x] a\n</quiz>")

	c, err := FromDirectory(dir, false, "*.md")
	if err != nil {
		t.Fatalf("FromDirectory: %v", err)
	}
	if c.TotalQuestions() != 1 || c.Quizzes[0].Question != "Top?" {
		t.Errorf("non-recursive scan went into subdirectories: %+v", c.Quizzes)
	}
}

func TestFromDirectoryNotADirectory(t *testing.T) {
	if _, err := FromDirectory(filepath.Join(t.TempDir(), "missing"), true, "*.md"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
