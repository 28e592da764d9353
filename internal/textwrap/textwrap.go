// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package textwrap adjusts the indentation of multi-line strings.
package textwrap

import "strings"

// Dedent strips the whitespace prefix shared by every non-empty line,
// letting multi-line literals be written indented to match the code
// around them.
//
// Note: Only tabs and spaces count as indentation.
// Note: Lines holding nothing but whitespace are normalized to a newline.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")
	var prefix string
	var found bool
	for _, line := range lines {
		if line == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			prefix, found = indent, true
			continue
		}
		prefix = commonPrefix(prefix, indent)
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = strings.TrimLeft(line, " \t")
		} else {
			out[i] = strings.TrimPrefix(line, prefix)
		}
	}
	return strings.Join(out, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
