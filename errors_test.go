// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

func TestNoMatchingContigErrorMessage(t *testing.T) {
	err := &NoMatchingContigError{Side: Qry, Contig: "q7"}
	if !strings.Contains(err.Error(), "q7") {
		t.Errorf("Error() = %q, want it to mention the contig", err.Error())
	}
}

func TestLrsFailureErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &LrsFailureError{Side: Ref, Contig: "r1", Len: 3, Err: inner}
	if !errors.Is(err, inner) {
		t.Error("LrsFailureError does not unwrap to its inner error")
	}
	if !strings.Contains(err.Error(), "r1") {
		t.Errorf("Error() = %q, want it to mention the contig", err.Error())
	}
}

func TestLogCircularComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	logCircularComponent(logger, []string{"r1"}, []string{"q1"})
	if !strings.Contains(buf.String(), "r1") || !strings.Contains(buf.String(), "q1") {
		t.Errorf("log output = %q, want it to mention both contig lists", buf.String())
	}
}

func TestLogBranchingUnresolved(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	logBranchingUnresolved(logger, "q1", []string{"r1", "r2"})
	if !strings.Contains(buf.String(), "q1") {
		t.Errorf("log output = %q, want it to mention the qry contig", buf.String())
	}
}
