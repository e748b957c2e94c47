package filepathdetect

import "testing"

func TestLooksAcceptsShapes(t *testing.T) {
	accept := []string{
		`/home/user/notes.md`,
		`./local/config.json`,
		`../sibling/file.go`,
		`C:\Users\me\report.docx`,
		`D:/projects/app/main.go`,
		`\\server\share\doc.txt`,
	}
	for _, s := range accept {
		if !Looks(s) {
			t.Errorf("expected Looks(%q) = true", s)
		}
	}
}

func TestLooksRejectsProseAndExtensionless(t *testing.T) {
	reject := []string{
		"please look at the logs",
		"/var/log/nowhere",           // no extension on the final component
		"just some / inline / slashes text.",
		"",
	}
	for _, s := range reject {
		if Looks(s) {
			t.Errorf("expected Looks(%q) = false", s)
		}
	}
}

func TestLooksRejectsTooLongExtension(t *testing.T) {
	if Looks(`/home/user/file.toolongextension`) {
		t.Error("extension over 8 characters should not be accepted")
	}
}
