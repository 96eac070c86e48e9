package sys

import (
	"strings"
	"testing"
)

func TestDumpStack(t *testing.T) {
	var stack string
	func() {
		defer func() {
			recover()
			stack = DumpStack()
		}()
		panic("test")
	}()
	if !strings.HasPrefix(stack, "goroutine ") {
		t.Errorf("stack does not start with a goroutine header: %q", stack)
	}
	if !strings.Contains(stack, "TestDumpStack") {
		t.Errorf("stack does not mention the test function:\n%s", stack)
	}
}
