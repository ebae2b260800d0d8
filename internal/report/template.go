package report

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; color: #1a1a2e; }
.container { width: 90%; margin: auto; }
.header { border-bottom: 2px solid #000; padding-bottom: 10px; margin-bottom: 20px; }
.header h1 { margin: 0 0 10px 0; }
.header table td { border: none; padding: 2px; font-size: 14px; }
.header .label { font-weight: bold; padding-right: 15px; }
.generated { color: #6c757d; font-size: 12px; }
h3 { color: #333; }
.chart-item { page-break-inside: avoid; margin-bottom: 40px; text-align: center; }
.chart-item h4 { text-align: left; background-color: #f0f2f6; padding: 10px; border-radius: 5px; }
.chart-item img { max-width: 100%; }
.chart-item .mean { font-size: 13px; color: #555; }
.summary-table, .score-table { width: 100%; border-collapse: collapse; margin-top: 20px; }
.summary-table th, .summary-table td, .score-table th, .score-table td {
  border: 1px solid #ddd; padding: 8px; text-align: left; font-size: 13px;
}
.summary-table th, .score-table th { background-color: #f2f2f2; }
.comments-section { margin-top: 30px; }
.comment { background-color: #f0f2f6; border-left: 5px solid #1f77b4; padding: 10px; margin-bottom: 10px; font-size: 13px; }
.metrics-container { display: flex; justify-content: space-around; text-align: center; margin-top: 30px; page-break-inside: avoid; }
.metric-card { border: 1px solid #ddd; padding: 15px; border-radius: 8px; width: 30%; }
.metric-card h4 { margin: 0 0 10px 0; color: #555; font-size: 14px; }
.metric-card p { font-size: 24px; font-weight: bold; margin: 0; color: #1f77b4; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>{{.Title}}</h1>
    <table>
      {{range .Fields}}<tr><td class="label">{{.Label}}:</td><td>{{.Value}}</td></tr>
      {{end}}
    </table>
    <p class="generated">Generated on {{.GeneratedAt}}</p>
  </div>

  <p>Total Responses: {{.TotalResponses}}</p>

  <h3>Response Summary</h3>
  <table class="summary-table">
    <thead><tr><th>Question</th><th>Mean</th></tr></thead>
    <tbody>
      {{range .Questions}}<tr><td>{{.Question}}</td><td>{{.MeanText}}</td></tr>
      {{end}}
    </tbody>
  </table>

  <h3>Quantitative Feedback</h3>
  {{range .Questions}}
  <div class="chart-item">
    <h4>{{.Question}}</h4>
    <img src="{{.ChartURI}}" alt="{{.Question}}">
    <p class="mean">Mean: {{.MeanText}}</p>
  </div>
  {{end}}

  {{if .Comments}}
  <div class="comments-section">
    <h3>Qualitative Feedback</h3>
    {{range .Comments}}<div class="comment"><p>{{.}}</p></div>
    {{end}}
  </div>
  {{end}}

  {{if .HasScores}}
  <div class="score-section">
    <h3>Score Summary</h3>
    <table class="score-table">
      <thead><tr><th>Attribute</th><th>Average Score</th></tr></thead>
      <tbody>
        {{range .Scores.Attributes}}<tr><td>{{.Question}}</td><td>{{printf "%.2f" .Average}}</td></tr>
        {{end}}
      </tbody>
    </table>
    <div class="metrics-container">
      <div class="metric-card">
        <h4>Total Score (out of {{printf "%.0f" .Scores.MaxPossible}})</h4>
        <p>{{printf "%.2f" .Scores.Total}}</p>
      </div>
      <div class="metric-card">
        <h4>Converted Score (out of {{printf "%.0f" .Scores.ConvertedMax}})</h4>
        <p>{{printf "%.2f" .Scores.Converted}}</p>
      </div>
      <div class="metric-card">
        <h4>Overall Average Rating</h4>
        <p>{{printf "%.2f" .Scores.OverallAverage}}</p>
      </div>
    </div>
  </div>
  {{end}}
</div>
</body>
</html>
`
