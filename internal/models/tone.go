package models

// Tone is the emotional register of an end page.
type Tone string

const (
	ToneDramatic          Tone = "dramatic"
	ToneIronic            Tone = "ironic"
	ToneAbsurd            Tone = "absurd"
	ToneHonest            Tone = "honest"
	TonePassiveAggressive Tone = "passive-aggressive"
	ToneUltraCringe       Tone = "ultra-cringe"
	ToneClassy            Tone = "classy"
	ToneTouching          Tone = "touching"
)

// Tones lists every accepted tone in display order.
var Tones = []Tone{
	ToneDramatic, ToneIronic, ToneAbsurd, ToneHonest,
	TonePassiveAggressive, ToneUltraCringe, ToneClassy, ToneTouching,
}

func (t Tone) IsValid() bool {
	for _, v := range Tones {
		if v == t {
			return true
		}
	}
	return false
}

// BackgroundType describes how BackgroundValue is interpreted.
type BackgroundType string

const (
	BackgroundImage BackgroundType = "image"
	BackgroundColor BackgroundType = "color"
	BackgroundGIF   BackgroundType = "gif"
	BackgroundVideo BackgroundType = "video"
)

func (b BackgroundType) IsValid() bool {
	switch b {
	case BackgroundImage, BackgroundColor, BackgroundGIF, BackgroundVideo:
		return true
	}
	return false
}
