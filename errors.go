// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package plainify

import (
	"errors"
	"fmt"
	"strings"
)

// UnsupportedFormatError is returned when the input is not a DOCX document.
type UnsupportedFormatError struct {
	Extension string
	MIMEType  string
}

func (e *UnsupportedFormatError) Error() string {
	parts := []string{"unsupported format"}
	if e.Extension != "" {
		parts = append(parts, fmt.Sprintf("extension=%q", e.Extension))
	}
	if e.MIMEType != "" {
		parts = append(parts, fmt.Sprintf("mime=%q", e.MIMEType))
	}
	return strings.Join(parts, " ")
}

// IsUnsupportedFormat reports whether the error is an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var target *UnsupportedFormatError
	return errors.As(err, &target)
}

// InputError is returned when the source file cannot be read or is not a
// well-formed DOCX container. It is fatal: no output is produced.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("read input %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("read input: %v", e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Reasons for a failed image-description call.
const (
	DescribeTimeout     = "timeout"
	DescribeAuth        = "auth"
	DescribeUnsupported = "unsupported format"
	DescribeBadResponse = "bad response"
)

// DescriptionError is returned by a Describer when an enrichment call
// fails. It is non-fatal: the image node is emitted without a description
// and the conversion continues.
type DescriptionError struct {
	Name   string // image name, e.g. "image1.png"
	Reason string // one of the Describe* constants
	Err    error
}

func (e *DescriptionError) Error() string {
	msg := fmt.Sprintf("describe image %s: %s", e.Name, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DescriptionError) Unwrap() error { return e.Err }
