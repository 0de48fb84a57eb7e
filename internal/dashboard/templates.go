package dashboard

import "html/template"

const layoutHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Sophia Toolkit - {{.Active}}</title>
<style>
*{margin:0;padding:0;box-sizing:border-box}
:root{
  --bg:#0a0a0f;--surface:#12121a;--surface2:#1a1a26;--border:#2a2a3a;
  --text:#e0e0ee;--text2:#8888aa;--text3:#555570;
  --accent:#6366f1;--accent-light:#818cf8;--accent-dim:#4f46e5;
  --danger:#ef4444;--success:#22c55e;--warn:#f59e0b;
  --mono:'SF Mono','Fira Code','JetBrains Mono',monospace;
  --sans:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;
}
body{font-family:var(--sans);background:var(--bg);color:var(--text);min-height:100vh}

/* Nav */
nav{background:var(--surface);border-bottom:1px solid var(--border);padding:0 24px;display:flex;align-items:center;height:52px;position:sticky;top:0;z-index:100}
nav .logo{font-family:var(--mono);font-size:1.1rem;font-weight:700;letter-spacing:-0.5px;margin-right:32px;text-decoration:none;color:var(--text)}
nav .logo span{color:var(--accent-light)}
nav a{color:var(--text2);text-decoration:none;font-size:0.82rem;padding:16px 12px;transition:color 0.2s;border-bottom:2px solid transparent}
nav a:hover{color:var(--text)}
nav a.active{color:var(--accent-light);border-bottom-color:var(--accent-light)}
nav .spacer{flex:1}
nav .badge{background:var(--surface2);color:var(--text3);font-size:0.7rem;padding:4px 10px;border-radius:12px;font-family:var(--mono)}

/* Main */
main{max-width:1100px;margin:0 auto;padding:32px 24px}
h1{font-size:1.4rem;font-weight:600;margin-bottom:8px}
h1 span{color:var(--accent-light)}
.page-desc{color:var(--text2);font-size:0.85rem;margin-bottom:28px}

/* Stats */
.stats{display:grid;grid-template-columns:repeat(4,1fr);gap:16px;margin-bottom:32px}
.stat{background:var(--surface);border:1px solid var(--border);border-radius:10px;padding:20px}
.stat .label{color:var(--text3);font-size:0.72rem;text-transform:uppercase;letter-spacing:1px;margin-bottom:6px}
.stat .value{font-family:var(--mono);font-size:1.8rem;font-weight:700}
.stat .value.success{color:var(--success)}
.stat .value.danger{color:var(--danger)}
.stat .value.warn{color:var(--warn)}

/* Card */
.card{background:var(--surface);border:1px solid var(--border);border-radius:10px;padding:20px;margin-bottom:20px}
.card h2{font-size:0.95rem;font-weight:600;margin-bottom:16px}
.card .stats{margin-bottom:0;background:none;border:none}
.card .stat{background:var(--surface2)}

/* Notices */
.notice{background:var(--surface);border:1px solid var(--border);border-radius:8px;padding:12px 16px;margin-bottom:16px;font-size:0.85rem;line-height:1.5}
.notice.info{border-left:3px solid var(--accent);color:var(--text2)}
.notice.warning{border-left:3px solid var(--warn);color:var(--text)}
.notice.error{border-left:3px solid var(--danger);color:var(--text)}

/* Table */
table{width:100%;border-collapse:collapse;font-size:0.82rem}
th{text-align:left;color:var(--text3);font-size:0.7rem;text-transform:uppercase;letter-spacing:1px;padding:8px 12px;border-bottom:1px solid var(--border)}
td{padding:10px 12px;border-bottom:1px solid var(--border);color:var(--text2);font-family:var(--mono);font-size:0.78rem}
tr:hover td{background:var(--surface2)}
td.details{color:var(--text3);font-size:0.72rem;max-width:340px;overflow:hidden;text-overflow:ellipsis;white-space:nowrap}

/* Level badges */
.badge-info{background:#6366f120;color:var(--accent-light);padding:3px 8px;border-radius:4px;font-size:0.7rem;font-weight:600}
.badge-warning{background:#f59e0b20;color:var(--warn);padding:3px 8px;border-radius:4px;font-size:0.7rem;font-weight:600}
.badge-error{background:#ef444420;color:var(--danger);padding:3px 8px;border-radius:4px;font-size:0.7rem;font-weight:600}

/* Chart */
.chart{padding:8px 0}
.chart svg{width:100%;height:220px;display:block}
.chart-labels{display:flex;justify-content:space-between;color:var(--text3);font-size:0.65rem;font-family:var(--mono);padding-top:4px}

/* Placeholder */
.placeholder{background:var(--bg);border:1px dashed var(--border);border-radius:8px;padding:16px;color:var(--text3);font-size:0.82rem;line-height:1.6}

/* Empty state */
.empty{color:var(--text3);text-align:center;padding:40px 0;font-size:0.85rem}

/* Responsive */
@media(max-width:768px){
  .stats{grid-template-columns:repeat(2,1fr)}
}
</style>
</head>
<body>
<nav aria-label="Sophia Toolkit Navigation">
  <a href="/" class="logo">sophia<span>kit</span></a>
  <a href="/trends" class="{{if eq .Active "trends"}}active{{end}}">Ethical Trends</a>
  <a href="/graph" class="{{if eq .Active "graph"}}active{{end}}">Knowledge Graph Explorer</a>
  <a href="/logs" class="{{if eq .Active "logs"}}active{{end}}">System Event Log Viewer</a>
  <div class="spacer"></div>
  <span class="badge">read-only</span>
</nav>
<main>`

const layoutFoot = `</main>
</body>
</html>`

var trendsTmpl = template.Must(template.New("trends").Parse(layoutHead + `
<h1>Ethical Trends <span>Analysis</span></h1>
<p class="page-desc">Trend summary and final-score history from the Sophia ethics database.</p>

{{range .Notices}}<div class="notice {{.Level}}">{{.Text}}</div>{{end}}

{{if .Empty}}
<div class="notice warning">{{.Empty}}</div>
{{else}}

{{if .TrendNotice}}
<div class="notice info">{{.TrendNotice}}</div>
{{else}}
<div class="card">
  <h2>Trend Analysis Summary</h2>
  <div class="stats">
    <div class="stat">
      <div class="label">Current Trend Direction</div>
      <div class="value">{{.Direction}}</div>
    </div>
    <div class="stat">
      <div class="label">Short-term Avg Score (Time-Weighted)</div>
      <div class="value">{{.AvgScore}}</div>
    </div>
  </div>
</div>
{{end}}

<div class="card">
  <h2>Ethical Score Over Time</h2>
  {{if .ChartError}}
  <div class="notice error">{{.ChartError}}</div>
  {{else}}
  <div class="chart">
    <svg viewBox="0 0 {{.Chart.Width}} {{.Chart.Height}}" preserveAspectRatio="none" role="img" aria-label="final_score over time">
      <polyline fill="none" stroke="var(--accent)" stroke-width="2" points="{{.Chart.Points}}"/>
      {{range .Chart.Dots}}<circle cx="{{.X}}" cy="{{.Y}}" r="3" fill="var(--accent-light)"/>{{end}}
    </svg>
  </div>
  <div class="chart-labels"><span>{{.Chart.StartLabel}}</span><span>{{.Chart.EndLabel}}</span></div>
  <div class="chart-labels"><span>min {{.Chart.MinScore}}</span><span>max {{.Chart.MaxScore}}</span></div>
  {{end}}
</div>

{{end}}
` + layoutFoot))

var graphTmpl = template.Must(template.New("graph").Parse(layoutHead + `
<h1>Knowledge Graph <span>Explorer</span></h1>
<p class="page-desc">Node and edge overview of the Sophia knowledge graph.</p>

{{range .Notices}}<div class="notice {{.Level}}">{{.Text}}</div>{{end}}

{{if .Unavailable}}
<div class="notice warning">{{.Unavailable}}</div>
{{else}}

<div class="card">
  <h2>Graph Overview</h2>
  <div class="stats">
    <div class="stat">
      <div class="label">Total Nodes</div>
      <div class="value">{{.NodeCount}}</div>
    </div>
    <div class="stat">
      <div class="label">Total Edges</div>
      <div class="value">{{.EdgeCount}}</div>
    </div>
  </div>
</div>

{{if .Hint}}<div class="notice info">{{.Hint}}</div>{{end}}

<div class="card">
  <h2>Visualization</h2>
  <div class="placeholder">Interactive graph visualization and browsing capabilities will be implemented here in a future update.</div>
</div>

{{end}}
` + layoutFoot))

var logsTmpl = template.Must(template.New("logs").Parse(layoutHead + `
<h1>System Event Log <span>Viewer</span></h1>
<p class="page-desc">Newline-delimited system events in the order the agent wrote them.</p>

{{range .Notices}}<div class="notice {{.Level}}">{{.Text}}</div>{{end}}

{{if .Empty}}
<div class="notice warning">{{.Empty}}</div>
{{else}}

<div class="card">
  <h2>Last {{.TailN}} Log Entries</h2>
  <table>
    <thead><tr><th>Time</th><th>Level</th><th>Message</th><th>Details</th></tr></thead>
    <tbody>
    {{range .Entries}}
    <tr>
      <td>{{.Time}}</td>
      <td>{{if .LevelClass}}<span class="badge-{{.LevelClass}}">{{.Level}}</span>{{else if .Level}}{{.Level}}{{else}}&mdash;{{end}}</td>
      <td>{{.Message}}</td>
      <td class="details">{{.Details}}</td>
    </tr>
    {{end}}
    </tbody>
  </table>
</div>

<div class="card">
  <h2>Future Enhancements</h2>
  <div class="placeholder">Future versions of this tool will include capabilities to filter logs by severity (INFO, WARNING, ERROR), search by keywords, and select date ranges.</div>
</div>

{{end}}
` + layoutFoot))
