package build

import (
	"path/filepath"
	"testing"

	"github.com/scala-steward/daffodil-build/internal/daffodil"
)

func TestClasspathOrder(t *testing.T) {
	tgt := target{
		Version:   "3.6.0",
		Toolchain: "2.12.18",
		Deps:      []daffodil.Dep{"org.apache.logging.log4j:log4j-core:2.20.0"},
	}
	got := classpath("/support", "/lib", tgt, []string{"/proj/resources", "/proj/extra"})

	want := []string{
		"/support",
		filepath.Join("/lib", "daffodil360", "scala-2.12.18"),
		filepath.Join("/lib", "daffodil360", "org.apache.logging.log4j-log4j-core-2.20.0"),
		"/proj/resources",
		"/proj/extra",
	}
	if len(got) != len(want) {
		t.Fatalf("classpath = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("classpath[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestJoinClasspath(t *testing.T) {
	joined := joinClasspath([]string{"/a", "/b"})
	want := "/a" + string(filepath.ListSeparator) + "/b"
	if joined != want {
		t.Errorf("joinClasspath = %q, want %q", joined, want)
	}
}
