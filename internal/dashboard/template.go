package dashboard

// indexHTML is the single-page status view. Kept inline so the binary is
// self-contained.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>polypaper — Polymarket paper trading</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Arial; background: #0f0f23; color: #fff; padding: 20px; }
  .container { max-width: 1100px; margin: 0 auto; }
  h1 { text-align: center; margin-bottom: 6px; color: #4ade80; }
  .updated { text-align: center; color: #888; margin-bottom: 20px; font-size: 13px; }
  .stats-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr)); gap: 12px; margin-bottom: 25px; }
  .card { background: #1a1a3e; padding: 14px; border-radius: 10px; text-align: center; }
  .card .label { color: #999; font-size: 12px; text-transform: uppercase; }
  .card .value { font-size: 22px; margin-top: 4px; }
  .value.pos { color: #4ade80; }
  .value.neg { color: #f87171; }
  .datenav { margin-bottom: 20px; }
  .datenav a { color: #93c5fd; margin-right: 10px; text-decoration: none; font-size: 14px; }
  .datenav a.active { color: #4ade80; font-weight: bold; }
  .run { background: #1a1a3e; border-radius: 10px; padding: 15px; margin-bottom: 15px; }
  .run-header { display: flex; justify-content: space-between; flex-wrap: wrap; color: #bbb; font-size: 13px; margin-bottom: 8px; }
  .run-header .rid { color: #4ade80; font-weight: bold; }
  .subhead { color: #93c5fd; font-size: 12px; text-transform: uppercase; margin: 10px 0 4px; }
  .why { color: #888; font-size: 12px; }
  table { width: 100%; border-collapse: collapse; font-size: 14px; }
  th { text-align: left; color: #888; padding: 6px 8px; border-bottom: 1px solid #333; font-weight: normal; }
  td { padding: 6px 8px; border-bottom: 1px solid #26264a; }
  .status { padding: 2px 8px; border-radius: 10px; font-size: 12px; }
  .status.pending { background: #713f12; color: #fbbf24; }
  .status.win { background: #14532d; color: #4ade80; }
  .status.loss { background: #7f1d1d; color: #f87171; }
  .status.void { background: #374151; color: #d1d5db; }
  .empty { color: #888; text-align: center; padding: 30px; }
</style>
</head>
<body>
<div class="container">
  <h1>polypaper</h1>
  <div class="updated">updated {{.Updated}}</div>

  <div class="stats-grid">
    <div class="card"><div class="label">Balance</div><div class="value">{{printf "$%.2f" .Stats.Balance}}</div></div>
    <div class="card"><div class="label">Pending</div><div class="value">{{.Stats.Pending}}</div></div>
    <div class="card"><div class="label">Locked</div><div class="value">{{printf "$%.2f" .Stats.PendingCost}}</div></div>
    <div class="card"><div class="label">Potential payout</div><div class="value">{{printf "$%.2f" .Stats.PotentialPayout}}</div></div>
    <div class="card"><div class="label">Potential profit</div><div class="value {{if ge .Stats.PotentialProfit 0.0}}pos{{else}}neg{{end}}">{{printf "$%.2f" .Stats.PotentialProfit}}</div></div>
    <div class="card"><div class="label">Realized</div><div class="value {{if ge .Stats.ActualProfit 0.0}}pos{{else}}neg{{end}}">{{printf "$%.2f" .Stats.ActualProfit}}</div></div>
    <div class="card"><div class="label">ROI</div><div class="value">{{printf "%.1f%%" .Stats.ROI}}</div></div>
    <div class="card"><div class="label">W / L / Void</div><div class="value">{{.Stats.Wins}} / {{.Stats.Losses}} / {{.Stats.Cancelled}}</div></div>
    <div class="card"><div class="label">Runs</div><div class="value">{{.Stats.TotalRuns}}</div></div>
    <div class="card"><div class="label">Trades</div><div class="value">{{.Stats.TotalTrades}}</div></div>
  </div>

  {{if .Dates}}
  <div class="datenav">
    <a href="/" {{if not .Date}}class="active"{{end}}>all</a>
    {{range .Dates}}<a href="/?date={{.}}" {{if eq . $.Date}}class="active"{{end}}>{{.}}</a>{{end}}
  </div>
  {{end}}

  {{if not .Runs}}
  <p class="empty">No runs recorded yet. Start the scanner with <code>polypaper run</code>.</p>
  {{end}}

  {{range .Runs}}
  <div class="run">
    <div class="run-header">
      <span class="rid">run {{.RunID}}</span>
      <span>{{.Timestamp.Format "2006-01-02 15:04:05"}}</span>
      <span>api {{.ScanInfo.TotalAPI}} → parsed {{.ScanInfo.TotalParsed}} → non-crypto {{.ScanInfo.NonCrypto}} → picked {{.ScanInfo.Filtered}}</span>
      <span>balance {{printf "$%.2f" .Summary.BalanceAfter}}</span>
    </div>
    {{if .PlannedTrades}}
    <div class="subhead">picked ({{len .PlannedTrades}})</div>
    <table>
      <tr><th>Side</th><th>Market</th><th>Price</th><th>Why</th></tr>
      {{range .PlannedTrades}}
      <tr>
        <td>{{.Outcome}}</td>
        <td>{{.Question}}</td>
        <td>{{printf "$%.4f" .Price}}</td>
        <td class="why">{{.Reason}}</td>
      </tr>
      {{end}}
    </table>
    {{end}}
    {{if .ExecutedTrades}}
    <div class="subhead">executed ({{len .ExecutedTrades}})</div>
    <table>
      <tr><th>Side</th><th>Market</th><th>Price</th><th>Shares</th><th>Cost</th><th>Ends</th><th>Status</th></tr>
      {{range .ExecutedTrades}}
      <tr>
        <td>{{.Outcome}}</td>
        <td>{{.Question}}</td>
        <td>{{printf "$%.4f" .Price}}</td>
        <td>{{printf "%.0f" .Shares}}</td>
        <td>{{printf "$%.2f" .Cost}}</td>
        <td>{{if .EndDate.IsZero}}—{{else}}{{.EndDate.Format "01-02 15:04"}}{{end}}</td>
        <td><span class="status {{if not .Settled}}pending{{else if .IsCancelled}}void{{else if .Won}}win{{else}}loss{{end}}">{{if not .Settled}}pending{{else}}{{.Resolution}}{{end}}</span></td>
      </tr>
      {{end}}
    </table>
    {{end}}
    {{if and (not .PlannedTrades) (not .ExecutedTrades)}}
    <div class="empty" style="padding: 8px">no trades this cycle</div>
    {{end}}
  </div>
  {{end}}
</div>
</body>
</html>
`
