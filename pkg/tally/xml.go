package tally

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Zaphoood/rewind/pkg/util/set"
	"github.com/antchfx/xmlquery"
)

const ROOT_ELEMENT = "tally"

var ErrEmptyPath = errors.New("empty path")

type xmlSheet struct {
	XMLName  xml.Name     `xml:"tally"`
	Name     string       `xml:"name,attr,omitempty"`
	Counters []xmlCounter `xml:"counter"`
}

type xmlCounter struct {
	Name  string `xml:"name,attr"`
	Value int64  `xml:",chardata"`
}

// Parse reads a sheet in the form
//
//	<tally name="groceries"><counter name="apples">3</counter></tally>
func Parse(r io.Reader) (*Sheet, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing sheet: %w", err)
	}
	root := xmlquery.FindOne(doc, "/"+ROOT_ELEMENT)
	if root == nil {
		return nil, fmt.Errorf("parsing sheet: missing <%s> root element", ROOT_ELEMENT)
	}

	sheet := &Sheet{Name: root.SelectAttr("name")}
	seen := set.New[string]()
	for i, node := range xmlquery.Find(root, "counter") {
		name := strings.TrimSpace(node.SelectAttr("name"))
		if seen.Contains(name) {
			return nil, fmt.Errorf("counter %d: %w: '%s'", i, ErrCounterExists, name)
		}
		seen.Insert(name)

		text := strings.TrimSpace(node.InnerText())
		var value int64
		if len(text) > 0 {
			value, err = strconv.ParseInt(text, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("counter '%s': invalid value '%s'", name, text)
			}
		}
		if err := sheet.Insert(sheet.Len(), Counter{name, value}); err != nil {
			return nil, fmt.Errorf("counter %d: %w", i, err)
		}
	}
	return sheet, nil
}

func Load(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func (s *Sheet) Write(w io.Writer) error {
	out := xmlSheet{Name: s.Name, Counters: make([]xmlCounter, 0, len(s.counters))}
	for _, c := range s.counters {
		out.Counters = append(out.Counters, xmlCounter{c.Name, c.Value})
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(out); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Save writes the sheet to path, replacing the file only once writing succeeded
func (s *Sheet) Save(path string) (err error) {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".rewind-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()
	if err = s.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

