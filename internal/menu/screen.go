// Package menu implements the navigation state machine behind the
// interactive menus. It is transport-agnostic: sessions hold screen state
// and enforce ownership, liveness and transition rules, while rendering and
// message plumbing live in the chat adapter.
package menu

import "fmt"

type ScreenKind int

const (
	KindMainMenu ScreenKind = iota
	KindStarterList
	KindComboList
	KindResourceMenu
	KindResourceList
	KindPlayerList
	KindPlayerDetail
	KindEnderInfo
	KindRoutesInfo
	KindClosed
)

func (k ScreenKind) String() string {
	switch k {
	case KindMainMenu:
		return "main_menu"
	case KindStarterList:
		return "starter_list"
	case KindComboList:
		return "combo_list"
	case KindResourceMenu:
		return "resource_menu"
	case KindResourceList:
		return "resource_list"
	case KindPlayerList:
		return "player_list"
	case KindPlayerDetail:
		return "player_detail"
	case KindEnderInfo:
		return "ender_info"
	case KindRoutesInfo:
		return "routes_info"
	case KindClosed:
		return "closed"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Screen is one navigation state. The meaning of the parameter fields
// depends on the kind: Category for starter lists, Category+Starter for
// combo lists, PlayerIndex for the player detail, Page for every paginated
// list. FromMain records whether a player list was opened through the main
// menu shortcut so "back" returns to the right parent.
type Screen struct {
	Kind        ScreenKind
	Category    string
	Starter     string
	PlayerIndex int
	Page        int
	FromMain    bool
}

func MainMenu() Screen {
	return Screen{Kind: KindMainMenu}
}

func StarterList(category string) Screen {
	return Screen{Kind: KindStarterList, Category: category}
}

func ComboList(category, starter string) Screen {
	return Screen{Kind: KindComboList, Category: category, Starter: starter}
}

func ResourceMenu() Screen {
	return Screen{Kind: KindResourceMenu}
}

func ResourceList() Screen {
	return Screen{Kind: KindResourceList}
}

func PlayerList(fromMain bool) Screen {
	return Screen{Kind: KindPlayerList, FromMain: fromMain}
}

func PlayerDetail(index int, fromMain bool) Screen {
	return Screen{Kind: KindPlayerDetail, PlayerIndex: index, FromMain: fromMain}
}

func EnderInfo() Screen {
	return Screen{Kind: KindEnderInfo}
}

func RoutesInfo() Screen {
	return Screen{Kind: KindRoutesInfo}
}

func Closed() Screen {
	return Screen{Kind: KindClosed}
}
