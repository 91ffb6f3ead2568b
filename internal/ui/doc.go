// Package ui implements the interactive wrapped slideshow using bubbletea's Elm architecture.
//
// The [Model] renders one screen per [session.Phase]:
//  1. Landing : profile link form with inline validation
//  2. Loading : spinner with a rotating message while the insights are generated
//  3. Experience : slide carousel with progress bars and a final share card
//  4. Error : failure message with the form for another attempt
//
// All state transitions go through [session.Session]; the model only turns key, mouse
// and timer input into session events and renders the result. Asynchronous work (the fetch,
// the loading ticker, slide entrance frames, saving the share card) is expressed as tea.Cmd
// values that report back through the Msg union type.
//
// Keys: enter submits, ←/h and →/l navigate, the mouse wheel scrolls the carousel,
// r restarts and s saves the share card on the final slide, q quits.
package ui
