package styles

import (
	"errors"
	"fmt"
)

var (
	ErrTextPosition   = errors.New("styles: text position must be in [1, 9]")
	ErrCustomPosition = errors.New("styles: custom text position must have two entries")
	ErrTitleAlign     = errors.New("styles: title alignment must be 1, 2 or 3")
)

// TextPlacement places text inside the frame of pad. Without a custom
// position, pos selects a cell of a 3x3 grid, numbered row by row from the
// top left (1) to the bottom right (9), and the alignment pushes the text
// towards the frame edges. custom gives the relative (x, y) position in the
// frame instead. Text rotated by 90 or 270 degrees gets a rotated
// alignment.
func TextPlacement(pad *Pad, txt string, scale float64, pos int, angle float64, custom []float64) (TextItem, error) {
	m := pad.Margins
	var (
		left   = m.Left
		right  = 1 - m.Right
		top    = 1 - m.Top
		bottom = m.Bottom
	)

	it := TextItem{
		Align: 22,
		Angle: angle,
		Font:  42,
		Size:  0.04 * scale,
		Text:  txt,
	}

	switch {
	case custom != nil:
		if len(custom) != 2 {
			Logger.Printf("fatal: custom text position must be a list with two entries, i.e. relative x and y coordinate in the pad")
			return TextItem{}, fmt.Errorf("%w, got %d", ErrCustomPosition, len(custom))
		}
		it.X = left + custom[0]*(right-left)
		it.Y = bottom + custom[1]*(top-bottom)

	case pos >= 1 && pos <= 9:
		pos--
		col, row := pos%3, pos/3
		it.X = left + (0.07+float64(col)*0.43)*(right-left)
		it.Y = top + (0.07+float64(row)*0.43)*(bottom-top)
		it.Align = 10*(col+1) + 3 - row
		switch angle {
		case 90:
			it.Align = 10*(it.Align%10) + 4 - it.Align/10
		case 270, -90:
			it.Align = 40 - 10*(it.Align%10) + it.Align/10
		}

	default:
		Logger.Printf("fatal: DrawText: pos must be in range [1 ... 9]")
		return TextItem{}, fmt.Errorf("%w, got %d", ErrTextPosition, pos)
	}

	return it, nil
}

// DrawText places txt with TextPlacement and draws it.
func DrawText(pad *Pad, txt string, scale float64, pos int, angle float64, custom []float64) error {
	it, err := TextPlacement(pad, txt, scale, pos, angle, custom)
	if err != nil {
		return err
	}
	pad.Draw(it)
	return nil
}

// Logo describes the experiment label of a plot.
type Logo struct {
	// CMSText is the experiment name, e.g. "CMS".
	CMSText string
	// ExtraText qualifies it, e.g. "Preliminary". ExtraText2 and ExtraText3
	// are further lines below it, drawn only inside the frame.
	ExtraText  string
	ExtraText2 string
	ExtraText3 string

	// PosX selects the placement: the tens digit picks the horizontal
	// alignment inside the frame (1 left, 2 centre, 3 right), 0 puts the
	// label above the frame. The units digit picks where the x position
	// is taken from (<= 1 RelPosX from the left, 2 centre, 3 RelPosX from
	// the right).
	PosX int

	RelPosX, RelPosY, RelExtraDY float64

	// CMSTextSize is in units of the top margin, 0.8 when unset.
	CMSTextSize float64
}

// LogoPlacement computes the text items of the experiment label.
func LogoPlacement(pad *Pad, logo Logo) []TextItem {
	const (
		cmsTextFont          = 62 // helvetica bold
		extraTextFont        = 52 // helvetica italic
		extraTextFont2and3   = 42
		lumiTextOffset       = 0.2
		extraOverCmsTextSize = 0.76
	)

	cmsTextSize := logo.CMSTextSize
	if cmsTextSize == 0 {
		cmsTextSize = 0.8
	}

	iPosX := logo.PosX
	outOfFrame := iPosX/10 == 0

	alignX, alignY := 2, 3
	if iPosX/10 == 0 {
		alignX = 1
	}
	if iPosX == 0 {
		alignX = 1
		alignY = 1
	}
	switch iPosX / 10 {
	case 1:
		alignX = 1
	case 2:
		alignX = 2
	case 3:
		alignX = 3
	}
	align := 10*alignX + alignY

	var (
		l = pad.Margins.Left
		t = pad.Margins.Top
		r = pad.Margins.Right
		b = pad.Margins.Bottom

		ratio         = pad.Ratio()
		extraTextSize = extraOverCmsTextSize * cmsTextSize
	)

	var items []TextItem

	if outOfFrame {
		items = append(items, TextItem{
			X:     l,
			Y:     1 - t + lumiTextOffset*t,
			Align: 11,
			Font:  cmsTextFont,
			Size:  cmsTextSize * t * ratio,
			Text:  logo.CMSText,
		})
	}

	var posX float64
	switch {
	case iPosX%10 <= 1:
		posX = l + logo.RelPosX*(1-l-r)
	case iPosX%10 == 2:
		posX = l + 0.5*(1-l-r)
	case iPosX%10 == 3:
		posX = 1 - r - logo.RelPosX*(1-l-r)
	}
	posY := 1 - t - logo.RelPosY*(1-t-b)

	switch {
	case !outOfFrame:
		items = append(items, TextItem{
			X:     posX,
			Y:     posY,
			Align: align,
			Font:  cmsTextFont,
			Size:  cmsTextSize * t * ratio,
			Text:  logo.CMSText,
		})
		if logo.ExtraText == "" {
			break
		}
		extra := TextItem{
			X:     posX,
			Y:     posY - logo.RelExtraDY*cmsTextSize*t,
			Align: align,
			Font:  extraTextFont,
			Size:  extraTextSize * t * ratio,
			Text:  logo.ExtraText,
		}
		items = append(items, extra)
		if logo.ExtraText2 != "" {
			extra.Y = posY - 1.8*logo.RelExtraDY*cmsTextSize*t
			extra.Font = extraTextFont2and3
			extra.Text = logo.ExtraText2
			items = append(items, extra)
		}
		if logo.ExtraText3 != "" {
			extra.Y = posY - 2.6*logo.RelExtraDY*cmsTextSize*t
			extra.Font = extraTextFont2and3
			extra.Text = logo.ExtraText3
			items = append(items, extra)
		}

	case logo.ExtraText != "":
		if iPosX == 0 {
			posX = l + logo.RelPosX*(1-l-r)
			posY = 1 - t + lumiTextOffset*t
		}
		items = append(items, TextItem{
			X:     posX,
			Y:     posY,
			Align: align,
			Font:  extraTextFont,
			Size:  extraTextSize * t * ratio,
			Text:  logo.ExtraText,
		})
	}

	return items
}

// DrawCMSLogo draws the experiment label on pad.
func DrawCMSLogo(pad *Pad, logo Logo) {
	pad.Draw(LogoPlacement(pad, logo)...)
}

// TitlePlacement places a title above the frame of pad, aligned with its
// left edge (1), centre (2) or right edge (3). size is in units of the top
// margin, 0.6 when zero.
func TitlePlacement(pad *Pad, txt string, align int, size float64) (TextItem, error) {
	if size == 0 {
		size = 0.6
	}
	const textOffset = 0.2

	var (
		t = pad.Margins.Top
		l = pad.Margins.Left
		r = pad.Margins.Right
	)

	it := TextItem{
		Y:    1 - t + textOffset*t + 0.0055,
		Font: 42,
		Size: size * t * pad.Ratio(),
		Text: txt,
	}
	switch align {
	case 1:
		it.X = l
		it.Align = 11
	case 2:
		it.X = l + (1-l-r)*0.5
		it.Align = 21
	case 3:
		it.X = 1 - r
		it.Align = 31
	default:
		return TextItem{}, fmt.Errorf("%w, got %d", ErrTitleAlign, align)
	}
	return it, nil
}

// DrawTitle draws a title above the frame of pad.
func DrawTitle(pad *Pad, txt string, align int, size float64) error {
	it, err := TitlePlacement(pad, txt, align, size)
	if err != nil {
		return err
	}
	pad.Draw(it)
	return nil
}
