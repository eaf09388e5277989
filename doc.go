// Package bramble is the widget tree core of a retained-mode GUI toolkit
// for [Ebitengine].
//
// Bramble provides the widget tree, ownership and disposal rules, theme
// inheritance, drawing traversal and the input state machine that routes
// pointer, keyboard and text events to widgets. Concrete widgets (buttons,
// text boxes, layouts) are built on top of it.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and drives
// the screen for you:
//
//	surface := bramble.NewEbitenSurface(800, 600)
//	screen, err := bramble.NewScreen("screen", "My App", surface)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// ... add widgets ...
//	screen.PerformLayout()
//	if err := bramble.Run(screen, bramble.RunConfig{Resizable: true}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, wrap the screen with [NewGame] and pass the result to
// [ebiten.RunGame] yourself.
//
// # Widgets
//
// A widget is any type that embeds *[WidgetNode] and registers itself as
// the node's owner:
//
//	type Label struct {
//		*bramble.WidgetNode
//		Caption string
//	}
//
//	func NewLabel(id, caption string) *Label {
//		l := &Label{Caption: caption}
//		l.WidgetNode = bramble.NewWidgetNode(l, id)
//		return l
//	}
//
// Widgets override Draw and PreferredSize as needed and opt into input by
// implementing the handler interfaces ([MouseButtonHandler],
// [MouseDragHandler], [KeyboardHandler] and the rest).
//
// # Ownership
//
// A parent holds its children; a child refers back to its parent weakly.
// Removing a child from a tree does not dispose it, so a widget can be
// moved between parents. [WidgetNode.Dispose] releases a subtree. [Attach],
// [AttachAt] and [Detach] report misuse as errors; the method forms
// ([WidgetNode.AddChild] and friends) panic with the same errors.
//
// # Themes
//
// A [Theme] set on a widget is shared by its whole subtree unless a
// descendant sets its own. Themes can be loaded from YAML with [LoadTheme].
//
// # Integrations
//
// Tooltips fade in with an easing curve from [gween]. Interaction events
// can be forwarded to a [Donburi] ECS world through the bramble/ecs
// adapter; see [Screen.SetEventSink].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package bramble
