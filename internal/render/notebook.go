package render

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// notebook is the subset of the Jupyter nbformat document the viewer needs.
type notebook struct {
	Cells    []notebookCell `json:"cells"`
	Metadata struct {
		Kernelspec struct {
			Language string `json:"language"`
		} `json:"kernelspec"`
		LanguageInfo struct {
			Name string `json:"name"`
		} `json:"language_info"`
	} `json:"metadata"`
	NBFormat int `json:"nbformat"`
}

type notebookCell struct {
	CellType string       `json:"cell_type"`
	Source   sourceLines  `json:"source"`
	Outputs  []cellOutput `json:"outputs"`
}

type cellOutput struct {
	OutputType string                 `json:"output_type"`
	Text       sourceLines            `json:"text"`
	Data       map[string]sourceLines `json:"data"`
}

// sourceLines accepts both the list-of-lines and plain-string encodings the
// nbformat spec allows.
type sourceLines []string

func (s *sourceLines) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		*s = lines
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*s = []string{one}
	return nil
}

func (s sourceLines) String() string {
	return strings.Join(s, "")
}

// notebookHTML renders an .ipynb document: markdown cells go through the
// markdown pipeline (so their links resolve like any other document), code
// cells are highlighted in the notebook's language, and plain-text outputs
// are shown verbatim.
func (r *Renderer) notebookHTML(rc Context, content []byte) (string, error) {
	var nb notebook
	if err := json.Unmarshal(content, &nb); err != nil {
		return "", fmt.Errorf("parsing notebook: %w", err)
	}

	language := nb.Metadata.LanguageInfo.Name
	if language == "" {
		language = nb.Metadata.Kernelspec.Language
	}
	if language == "" {
		language = "python"
	}

	var b strings.Builder
	b.WriteString(`<div class="notebook">` + "\n")
	for _, cell := range nb.Cells {
		switch cell.CellType {
		case "markdown":
			rendered, err := r.markdown(rc, []byte(cell.Source.String()))
			if err != nil {
				return "", err
			}
			b.WriteString(`<div class="nb-cell nb-markdown">` + rendered + "</div>\n")
		case "code":
			b.WriteString(`<div class="nb-cell nb-code">`)
			if err := highlightLanguage(&b, language, cell.Source.String()); err != nil {
				return "", err
			}
			writeOutputs(&b, cell.Outputs)
			b.WriteString("</div>\n")
		case "raw":
			b.WriteString(`<div class="nb-cell nb-raw"><pre>` + html.EscapeString(cell.Source.String()) + "</pre></div>\n")
		}
	}
	b.WriteString("</div>\n")
	return b.String(), nil
}

// writeOutputs appends the text outputs of a code cell. Rich output types
// are skipped except for their text/plain fallback.
func writeOutputs(b *strings.Builder, outputs []cellOutput) {
	for _, out := range outputs {
		var text string
		switch out.OutputType {
		case "stream":
			text = out.Text.String()
		case "execute_result", "display_data":
			text = out.Data["text/plain"].String()
		}
		if text == "" {
			continue
		}
		b.WriteString(`<pre class="nb-output">` + html.EscapeString(text) + "</pre>")
	}
}
