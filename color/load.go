// seehuhn.de/go/pdfgen - a library for generating PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package color

import (
	"os"
	"strconv"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/internal/keyval"
	"seehuhn.de/go/pdfgen/resource"
)

// Load registers the color space described by spec and returns its handle.
//
// The recognised specifications are:
//
//	gray | rgb | cmyk
//	calgray; white=Xw Zw [; black=X Y Z] [; gamma=g]
//	calrgb; white=Xw Zw [; black=X Y Z] [; gamma=gr gg gb] [; matrix=9 numbers]
//	lab; white=Xw Zw [; black=X Y Z] [; range=amin amax bmin bmax]
//	icc; profile=path [; components=n] [; alternate=gray|rgb|cmyk]
//	srgb
//	indexed; base=gray|rgb|cmyk; palette=c1 c2 ...
//
// A palette key can also be given directly with a device color space,
// for example "rgb; palette=255 0 0 0 0 255".  White points are given by
// their X and Z coordinates; the Y coordinate is always 1.
//
// Loading the same specification twice returns the same handle.
func Load(reg *resource.Registry, spec string) (resource.Handle, error) {
	const op = "load color space"

	s, err := keyval.Parse(spec)
	if err != nil {
		return resource.Handle{}, err
	}

	kind := s.Kind
	if kind == "" {
		return resource.Handle{}, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
			"%q: missing color space kind", spec)
	}
	if kind != "indexed" && s.Has("palette") {
		if !isDeviceKind(kind) {
			return resource.Handle{}, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
				"%q: palette requires a device color space", spec)
		}
		base := kind
		palette := s.Ints("palette")
		if err := s.Finish(); err != nil {
			return resource.Handle{}, err
		}
		return loadIndexed(reg, base, palette)
	}

	var build func() (Space, error)
	var deps []resource.Handle
	switch kind {
	case "gray", "rgb", "cmyk":
		if err := s.Finish(); err != nil {
			return resource.Handle{}, err
		}
		space := deviceSpace(kind)
		build = func() (Space, error) { return space, nil }

	case "calgray":
		s.Require("white")
		white := s.Floats("white", 2)
		black := s.Floats("black", 3)
		gamma := s.Float("gamma", 1)
		if err := s.Finish(); err != nil {
			return resource.Handle{}, err
		}
		build = func() (Space, error) {
			return CalGray(whitePoint(white), black, gamma)
		}

	case "calrgb":
		s.Require("white")
		white := s.Floats("white", 2)
		black := s.Floats("black", 3)
		gamma := s.Floats("gamma", 3)
		matrix := s.Floats("matrix", 9)
		if err := s.Finish(); err != nil {
			return resource.Handle{}, err
		}
		build = func() (Space, error) {
			return CalRGB(whitePoint(white), black, gamma, matrix)
		}

	case "lab", "cielab":
		s.Require("white")
		white := s.Floats("white", 2)
		black := s.Floats("black", 3)
		ranges := s.Floats("range", 4)
		if err := s.Finish(); err != nil {
			return resource.Handle{}, err
		}
		build = func() (Space, error) {
			return Lab(whitePoint(white), black, ranges)
		}

	case "icc", "srgb":
		var path, alternate string
		var components int
		if kind == "icc" {
			s.Require("profile")
			path = s.String("profile", "")
			components = s.Int("components", 0)
		}
		alternate = s.Choice("alternate", "", "gray", "rgb", "cmyk")
		if err := s.Finish(); err != nil {
			return resource.Handle{}, err
		}

		var altHandle resource.Handle
		if alternate != "" {
			altHandle, err = Load(reg, alternate)
			if err != nil {
				return resource.Handle{}, err
			}
			deps = append(deps, altHandle)
		}

		build = func() (Space, error) {
			var space *SpaceICCBased
			if kind == "srgb" {
				space = SRGB()
			} else {
				data, err := os.ReadFile(path)
				if err != nil {
					return nil, pdfgen.Wrap(pdfgen.ErrResourceUnavailable, op, err)
				}
				space, err = ICCBased(data)
				if err != nil {
					return nil, pdfgen.Wrap(pdfgen.ErrInvalidSpecification, op, err)
				}
			}
			if components != 0 && components != space.N {
				return nil, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
					"profile has %d components, not %d", space.N, components)
			}
			if alternate != "" && deviceSpace(alternate).Channels() != space.N {
				return nil, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
					"alternate space %s does not match the profile", alternate)
			}
			space.Alternate = altHandle
			return space, nil
		}

	case "indexed":
		s.Require("base", "palette")
		base := s.Choice("base", "rgb", "gray", "cmyk")
		palette := s.Ints("palette")
		if err := s.Finish(); err != nil {
			return resource.Handle{}, err
		}
		return loadIndexed(reg, base, palette)

	default:
		return resource.Handle{}, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
			"%q: unknown color space %q", spec, kind)
	}

	return reg.Load(resource.KindColorSpace, s.Canonical(), func() (resource.Resource, error) {
		space, err := build()
		if err != nil {
			return nil, invalid(err)
		}
		err = pdfgen.CheckVersion(reg.Out().Version, string(space.Family())+" color space",
			space.MinVersion())
		if err != nil {
			return nil, err
		}
		return space, nil
	}, deps...)
}

func loadIndexed(reg *resource.Registry, base string, palette []int) (resource.Handle, error) {
	baseHandle, err := Load(reg, base)
	if err != nil {
		return resource.Handle{}, err
	}
	id := "indexed;base=" + base + ";palette=" + intsKey(palette)
	return reg.Load(resource.KindColorSpace, id, func() (resource.Resource, error) {
		space, err := Indexed(deviceSpace(base), baseHandle, palette)
		if err != nil {
			return nil, invalid(err)
		}
		return space, nil
	}, baseHandle)
}

func invalid(err error) error {
	if _, isOpError := err.(*pdfgen.OpError); isOpError {
		return err
	}
	return pdfgen.Wrap(pdfgen.ErrInvalidSpecification, "load color space", err)
}

func isDeviceKind(kind string) bool {
	return kind == "gray" || kind == "rgb" || kind == "cmyk"
}

func deviceSpace(kind string) SpaceDevice {
	switch kind {
	case "gray":
		return DeviceGray
	case "cmyk":
		return DeviceCMYK
	default:
		return DeviceRGB
	}
}

func whitePoint(xz []float64) []float64 {
	if xz == nil {
		return nil
	}
	return []float64{xz[0], 1, xz[1]}
}

func intsKey(xx []int) string {
	buf := make([]byte, 0, 4*len(xx))
	for i, x := range xx {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, int64(x), 10)
	}
	return string(buf)
}
