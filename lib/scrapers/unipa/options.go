package unipa

import (
	"fmt"

	"syllabus-scraper/lib/browser"
)

// Unspecified is the portal's sentinel option meaning "no restriction".
// Every dropdown on the search screen carries it as the first entry.
const Unspecified = "指示なし"

// Prompt labels for the criteria chosen before the browser starts.
const (
	LabelCampus     = "キャンパス"
	LabelDepartment = "学部（時間割所属）"
	LabelSubject    = "開講科目名"
)

// DynamicFieldLabels are the criteria rows whose dropdowns only fill after
// the portal loads them over ajax, in the order they appear on screen.
var DynamicFieldLabels = []string{"学年", "学期", "曜日", "時限"}

// Default prompt lists for the static criteria. Installs with more
// campuses or faculties override these through config.
var (
	DefaultCampusOptions     = []string{Unspecified, "八王子", "蒲田"}
	DefaultDepartmentOptions = []string{Unspecified, "コンピュータサイエンス学部"}
)

// Fixed portal selectors. The menu ids are stable across installs because
// the portal product generates them from function codes, not content.
var (
	locUserName       = browser.Name("userName")
	locPassword       = browser.Name("password")
	locLoginButton    = browser.XPath("//button[contains(text(), 'ログイン')]")
	locLoginButtonAlt = browser.CSS(".btn.waves-effect.waves-light")

	locMenuAcademic       = browser.ID("menu-link-mt-kyomu")
	locMenuSyllabus       = browser.XPath("//a[@title='シラバス']")
	locMenuSyllabusSearch = browser.ID("menu-link-mf-156037")

	locYearField        = browser.ID("nendo")
	locCampusSelect     = browser.ID("campusCd")
	locDepartmentSelect = browser.ID("jikanwariShozokuSelect")

	locSearchButton = browser.XPath("//input[contains(@value, '検索開始')]")
)

// dynamicFieldLocator finds the select that sits in the cell next to the
// row label. The portal renders criteria as label/control table pairs with
// no usable ids on the controls.
func dynamicFieldLocator(label string) browser.Locator {
	return browser.XPath(fmt.Sprintf("//td[contains(text(), '%s')]/following-sibling::td//select", label))
}

func subjectFilterLocator() browser.Locator {
	return browser.XPath(fmt.Sprintf("//td[contains(text(), '%s')]/following-sibling::td//input[@type='text']", LabelSubject))
}
