package imagecreator

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/tribunen/billettvakt/constant"
	"github.com/tribunen/billettvakt/venue"
)

const (
	logoPaddingTop = 50
	clubLogoX      = 200
	opponentLogoX  = 1300
	textStartY     = 1100

	maxFontSize = 100
	minFontSize = 10
	lineSpacing = 1.5
)

// Creator composites a report text block onto a club-branded background
// with the club and opponent logos.
type Creator struct {
	BackgroundPath string
	ClubLogoPath   string
	FontPath       string
}

func New(backgroundPath, clubLogoPath string) *Creator {
	return &Creator{
		BackgroundPath: backgroundPath,
		ClubLogoPath:   clubLogoPath,
		FontPath:       filepath.Join(constant.ImagesPath, "SFMonoRegular.otf"),
	}
}

// Create renders the report. The first line of the text (the raw event
// title) is used to look up the opponent logo and is replaced with the
// "<opponent>, <league>" caption before drawing.
func (c *Creator) Create(text string, logoEntries []venue.LogoEntry, league string) (image.Image, error) {
	background, err := gg.LoadImage(c.BackgroundPath)
	if err != nil {
		return nil, fmt.Errorf("error loading background %s: %w", c.BackgroundPath, err)
	}
	clubLogo, err := gg.LoadImage(c.ClubLogoPath)
	if err != nil {
		return nil, fmt.Errorf("error loading club logo %s: %w", c.ClubLogoPath, err)
	}

	lines := strings.Split(text, "\n")
	logo, ok := venue.FindLogo(lines[0], logoEntries)
	if !ok {
		return nil, fmt.Errorf("no matching opponent in first line %q", lines[0])
	}
	lines[0] = fmt.Sprintf("%s, %s", logo.Title, league)
	text = strings.Join(lines, "\n")

	opponentLogo, err := gg.LoadImage(filepath.Join(constant.ImagesPath, logo.File))
	if err != nil {
		return nil, fmt.Errorf("error loading opponent logo %s: %w", logo.File, err)
	}

	dc := gg.NewContextForImage(background)
	dc.DrawImage(clubLogo, clubLogoX, logoPaddingTop)
	dc.DrawImage(opponentLogo, opponentLogoX, logoPaddingTop)

	width, err := c.fitFont(dc, text)
	if err != nil {
		return nil, err
	}
	dc.SetRGB(1, 1, 1)
	x := (float64(dc.Width()) - width) / 2
	dc.DrawStringWrapped(text, x, textStartY, 0, 0, float64(dc.Width()), lineSpacing, gg.AlignLeft)

	return dc.Image(), nil
}

// fitFont loads the monospaced face, shrinking it until the widest report
// line fits the background. Returns the resulting text block width.
func (c *Creator) fitFont(dc *gg.Context, text string) (float64, error) {
	for size := maxFontSize; size >= minFontSize; size -= 5 {
		if err := dc.LoadFontFace(c.FontPath, float64(size)); err != nil {
			return 0, fmt.Errorf("error loading font %s: %w", c.FontPath, err)
		}
		width, _ := dc.MeasureMultilineString(text, lineSpacing)
		if width <= float64(dc.Width()) {
			return width, nil
		}
	}
	width, _ := dc.MeasureMultilineString(text, lineSpacing)
	return width, nil
}

// Save writes the image as PNG and returns the saved path.
func (c *Creator) Save(img image.Image, path string) (string, error) {
	if err := gg.SavePNG(path, img); err != nil {
		return "", fmt.Errorf("error saving image to %s: %w", path, err)
	}
	fmt.Printf("Image saved to %s\n", path)
	return path, nil
}
