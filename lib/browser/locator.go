package browser

import "fmt"

// By names the lookup strategy a Locator uses.
type By int

const (
	ByCSS By = iota
	ByID
	ByName
	ByXPath
)

func (b By) String() string {
	switch b {
	case ByCSS:
		return "css"
	case ByID:
		return "id"
	case ByName:
		return "name"
	case ByXPath:
		return "xpath"
	default:
		return "unknown"
	}
}

// Locator describes how to find an element on a page.
type Locator struct {
	By    By
	Value string
}

func CSS(selector string) Locator { return Locator{By: ByCSS, Value: selector} }
func ID(id string) Locator        { return Locator{By: ByID, Value: id} }
func Name(name string) Locator    { return Locator{By: ByName, Value: name} }
func XPath(xpath string) Locator  { return Locator{By: ByXPath, Value: xpath} }

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.By, l.Value)
}

// css returns the locator as a css selector, or "" when the locator is
// xpath-based and has no css equivalent.
func (l Locator) css() string {
	switch l.By {
	case ByCSS:
		return l.Value
	case ByID:
		return "#" + l.Value
	case ByName:
		return fmt.Sprintf("[name=%q]", l.Value)
	default:
		return ""
	}
}
