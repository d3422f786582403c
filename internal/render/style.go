/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"
	"image/color"
)

// Color is an 8-bit RGBA color shared by the backends.
type Color struct{ R, G, B, A uint8 }

func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

func (c Color) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// Palette holds the colors used to paint a sketch.
type Palette struct {
	Canvas      Color
	Border      Color
	Field       Color
	Button      Color
	ButtonText  Color
	Text        Color
	Muted       Color
	Selection   Color
	SelectionBG Color
}

// DefaultPalette is a light neutral scheme close to the on-screen look.
var DefaultPalette = Palette{
	Canvas:      Color{255, 255, 255, 255},
	Border:      Color{209, 213, 219, 255},
	Field:       Color{255, 255, 255, 255},
	Button:      Color{24, 24, 27, 255},
	ButtonText:  Color{250, 250, 250, 255},
	Text:        Color{9, 9, 11, 255},
	Muted:       Color{113, 113, 122, 255},
	Selection:   Color{59, 130, 246, 255},
	SelectionBG: Color{219, 234, 254, 51},
}

// FontSize is the label size used by vector backends.
const FontSize float32 = 14
