package mixin

import "github.com/toyz/camp/internal/models"

// Recognized entry points
const (
	MixinCall     = "camp.mixin"
	TraitCall     = "camp.trait"
	RequireMarker = models.TraitRequireMarker
)

// SpecializedPrefix starts the name of a trait member copied for one target
// class
const SpecializedPrefix = "JSComp$$"

const prototypeSegment = "prototype"
