package plainify

import (
	"bytes"
	"context"
	"image"

	// Registered so validateImage can recognize the formats Word embeds.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Describer produces a natural-language description for an embedded
// image. It is an injected capability: the converter depends on it but
// never constructs one, so conversions run deterministically with a stub
// and image enrichment stays optional.
//
// A failed call returns a *DescriptionError. Implementations own their
// own timeout; the converter only threads the context through.
type Describer interface {
	Describe(ctx context.Context, img []byte, name string) (string, error)
}

// DescriberFunc adapts a function to the Describer interface.
type DescriberFunc func(ctx context.Context, img []byte, name string) (string, error)

func (f DescriberFunc) Describe(ctx context.Context, img []byte, name string) (string, error) {
	return f(ctx, img, name)
}

// validateImage checks that the bytes decode as a known raster format
// before they are shipped to a remote model. Returns a *DescriptionError
// with the unsupported-format reason otherwise.
func validateImage(img []byte, name string) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(img)); err != nil {
		return &DescriptionError{Name: name, Reason: DescribeUnsupported, Err: err}
	}
	return nil
}
