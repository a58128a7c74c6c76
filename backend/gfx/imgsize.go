/*
Package gfx hosts graphics collaborators of the formatter backend.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gfx

import (
	"image"
	"io"

	// image formats for natural-size probing
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/npillmayer/visfmt/core"
	"github.com/npillmayer/visfmt/core/dimen"
)

// NaturalSize probes an encoded image for its natural dimensions in
// device units. Only the image header is decoded.
//
// Backgrounds and replaced content size against the natural dimensions;
// painting decodes the pixels separately.
func NaturalSize(r io.Reader) (dimen.DU, dimen.DU, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, core.WrapError(err, core.EINVALID, "cannot read image header")
	}
	return dimen.FromPixels(int32(cfg.Width)), dimen.FromPixels(int32(cfg.Height)), nil
}
