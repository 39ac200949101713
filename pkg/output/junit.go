package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// junitRenderer writes JUnit XML so CI systems can show out of date
// documentation as failed tests
type junitRenderer struct {
	w io.Writer
}

func newJUnit(w io.Writer) *junitRenderer {
	return &junitRenderer{w: w}
}

func (r *junitRenderer) write(doc *etree.Document) error {
	doc.Indent(2)
	_, err := doc.WriteTo(r.w)
	return err
}

func newSuites(name string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	suites := doc.CreateElement("testsuites")
	suites.CreateAttr("name", name)
	return doc, suites
}

func (r *junitRenderer) RenderReport(report *Report) error {
	doc, suites := newSuites("snipper")
	suite := suites.CreateElement("testsuite")
	suite.CreateAttr("name", report.Root)
	suite.CreateAttr("time", fmt.Sprintf("%.3f", report.Seconds))

	tests, failures, errs := 0, 0, 0
	for _, f := range report.Files {
		tests++
		tc := suite.CreateElement("testcase")
		tc.CreateAttr("classname", strings.Join(f.Configurations, ","))
		tc.CreateAttr("name", f.Path)
		if report.Check && f.Changed {
			failures++
			fail := tc.CreateElement("failure")
			fail.CreateAttr("type", "outdated")
			fail.CreateAttr("message", f.Path+" is out of date")
			if f.Diff != "" {
				fail.CreateCData(f.Diff)
			}
		}
	}
	if report.Error != nil {
		tests++
		errs++
		tc := suite.CreateElement("testcase")
		tc.CreateAttr("classname", "snipper")
		tc.CreateAttr("name", "run")
		addError(tc, report.Error)
	}

	suite.CreateAttr("tests", fmt.Sprint(tests))
	suite.CreateAttr("failures", fmt.Sprint(failures))
	suite.CreateAttr("errors", fmt.Sprint(errs))
	return r.write(doc)
}

func addError(tc *etree.Element, e *ErrorReport) {
	el := tc.CreateElement("error")
	el.CreateAttr("type", e.Code)
	el.CreateAttr("message", e.Message)
}

func (r *junitRenderer) RenderSnippets(snippets []SnippetReport) error {
	doc, suites := newSuites("snippets")
	suite := suites.CreateElement("testsuite")
	suite.CreateAttr("name", "snippets")
	suite.CreateAttr("tests", fmt.Sprint(len(snippets)))
	for _, s := range snippets {
		tc := suite.CreateElement("testcase")
		tc.CreateAttr("classname", s.Source)
		tc.CreateAttr("name", s.Name)
	}
	return r.write(doc)
}

func (r *junitRenderer) RenderError(err error) error {
	doc, suites := newSuites("snipper")
	suite := suites.CreateElement("testsuite")
	suite.CreateAttr("name", "snipper")
	suite.CreateAttr("tests", "1")
	suite.CreateAttr("errors", "1")
	tc := suite.CreateElement("testcase")
	tc.CreateAttr("classname", "snipper")
	tc.CreateAttr("name", "run")
	addError(tc, NewErrorReport(err))
	return r.write(doc)
}

// RenderMessage drops messages; the output must stay a single XML document
func (r *junitRenderer) RenderMessage(string) error {
	return nil
}
