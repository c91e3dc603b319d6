package report

import (
	"html/template"
	"io"
	"os"
	"time"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
)

const htmlTpl = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Headline Radar | {{ .Result.Headline }}</title>
    <script src="https://cdn.jsdelivr.net/npm/marked/marked.min.js"></script>
    <style>
        :root {
            --primary-color: #2563eb;
            --bg-color: #f8fafc;
            --card-bg: #ffffff;
            --text-main: #1e293b;
            --text-secondary: #64748b;
            --border-color: #e2e8f0;
            --accent-purple: #a855f7;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background-color: var(--bg-color);
            color: var(--text-main);
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 800px; margin: 0 auto; }
        header { text-align: center; margin-bottom: 32px; padding: 20px 0; }
        h1 { font-size: 1.8rem; margin: 0 0 10px 0; letter-spacing: -0.025em; }
        .meta-row {
            display: flex;
            flex-wrap: wrap;
            justify-content: center;
            gap: 12px;
            font-size: 0.85rem;
            color: var(--text-secondary);
        }
        .tag { padding: 2px 10px; border-radius: 6px; background-color: #f1f5f9; }
        .tag-category { background-color: #e0f2fe; color: #0369a1; }
        .card {
            background: var(--card-bg);
            border-radius: 12px;
            padding: 24px;
            margin-bottom: 24px;
            border: 1px solid var(--border-color);
            box-shadow: 0 4px 6px -1px rgba(0, 0, 0, 0.1);
        }
        .card h2 { margin-top: 0; font-size: 1.2rem; }
        .section-reasoning { border-left: 4px solid var(--accent-purple); background-color: #faf5ff; }
        .section-analysis { border-left: 4px solid var(--primary-color); }
        .markdown-content p { margin: 0 0 10px 0; }
        .markdown-content ul { margin: 0; padding-left: 20px; }
        .footer { text-align: center; margin-top: 40px; color: var(--text-secondary); font-size: 0.9rem; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>{{ .Result.Headline }}</h1>
            <div class="meta-row">
                <span class="tag tag-category">{{ .Result.Topic }}</span>
                <span class="tag">{{ .Result.Provider }} · {{ .Result.Model }}</span>
                {{if .Result.Cached}}<span class="tag">cached</span>{{end}}
                {{with .Result.Source}}<a href="{{ .URL }}" target="_blank">{{if .SiteName}}{{ .SiteName }}{{else}}source{{end}}</a>{{end}}
                <span>{{ .Date }}</span>
            </div>
        </header>

        {{with .Result.ReasoningTrace}}
        <div class="card section-reasoning">
            <h2>Reasoning</h2>
            <div class="markdown-content" id="render-reasoning"></div>
            <div style="display:none" id="raw-reasoning">{{ . }}</div>
        </div>
        {{end}}

        <div class="card section-analysis">
            <h2>Analysis</h2>
            <div class="markdown-content" id="render-analysis"></div>
            <div style="display:none" id="raw-analysis">{{ .Result.RawText }}</div>
        </div>

        <script>
            for (const id of ['analysis', 'reasoning']) {
                const raw = document.getElementById('raw-' + id);
                if (raw) {
                    document.getElementById('render-' + id).innerHTML = marked.parse(raw.textContent);
                }
            }
        </script>

        <div class="footer">
            Generated by Headline Radar
        </div>
    </div>
</body>
</html>`

var tpl = template.Must(template.New("report").Parse(htmlTpl))

// Render 渲染单次分析结果
func Render(w io.Writer, res *model.AnalysisResult, now time.Time) error {
	data := struct {
		Date   string
		Result *model.AnalysisResult
	}{
		Date:   now.Format(time.DateOnly),
		Result: res,
	}
	return tpl.Execute(w, data)
}

// WriteFile 将报告写入指定文件
func WriteFile(path string, res *model.AnalysisResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Render(f, res, time.Now())
}
