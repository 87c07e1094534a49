package card

import "errors"

// ErrUnknownAbility is returned when an Activate action names an ability
// tag a card's Hooks.Activate doesn't recognize.
var ErrUnknownAbility = errors.New("unknown ability tag")
