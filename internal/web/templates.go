package web

import (
	"html/template"
)

var dashboardHTML = `{{define "dashboard"}}<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>PhishGuard Dashboard</title>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body { background: #0b1120; color: #cbd5e1; font-family: 'Segoe UI', sans-serif; padding: 24px; }
        h1 { font-size: 20px; font-weight: 500; color: #e2e8f0; margin-bottom: 16px; }
        .banner { display: inline-block; padding: 4px 12px; border-radius: 999px; font-size: 12px;
                  letter-spacing: 1px; margin-bottom: 20px; }
        .banner.online { background: rgba(34,197,94,.12); color: #4ade80; border: 1px solid rgba(34,197,94,.3); }
        .banner.offline { background: rgba(239,68,68,.12); color: #f87171; border: 1px solid rgba(239,68,68,.3); }
        .cards { display: flex; gap: 12px; margin-bottom: 20px; flex-wrap: wrap; }
        .card { background: #111a2e; border: 1px solid #1e293b; border-radius: 10px; padding: 14px 20px; min-width: 130px; }
        .card .label { font-size: 11px; color: #64748b; text-transform: uppercase; letter-spacing: 1px; }
        .card .value { font-size: 22px; color: #e2e8f0; margin-top: 4px; font-family: monospace; }
        .controls { display: flex; gap: 10px; margin-bottom: 14px; }
        input, select { background: #0f172a; border: 1px solid #1e293b; color: #cbd5e1; border-radius: 8px; padding: 8px 12px; }
        input { flex: 1; }
        table { width: 100%; border-collapse: collapse; background: #111a2e; border: 1px solid #1e293b; border-radius: 10px; overflow: hidden; }
        th, td { text-align: left; padding: 10px 14px; font-size: 13px; }
        th { background: #0f172a; color: #64748b; font-weight: 500; border-bottom: 1px solid #1e293b; }
        tr { border-bottom: 1px solid #16233c; }
        .verdict { padding: 2px 8px; border-radius: 6px; font-size: 11px; letter-spacing: 1px; }
        .verdict.SAFE { background: rgba(34,197,94,.1); color: #4ade80; }
        .verdict.SUSPICIOUS { background: rgba(234,179,8,.1); color: #facc15; }
        .verdict.MALICIOUS { background: rgba(239,68,68,.1); color: #f87171; }
        .mono { font-family: monospace; color: #94a3b8; }
        a.report { color: #38bdf8; font-size: 12px; text-decoration: none; }
        button.del { background: none; border: none; color: #64748b; cursor: pointer; font-size: 14px; }
        button.del:hover { color: #f87171; }
        .empty { padding: 28px; text-align: center; color: #475569; font-style: italic; }
    </style>
</head>
<body>
    <h1>PhishGuard Threat Logs</h1>
    <span id="banner" class="banner offline">EXTENSION: OFFLINE</span>
    <span id="lastPing" class="mono" style="margin-left:10px;font-size:12px;">Last ping: Never</span>

    <div class="cards">
        <div class="card"><div class="label">Total Scans</div><div class="value" id="cTotal">0</div></div>
        <div class="card"><div class="label">URL Scans</div><div class="value" id="cURL">0</div></div>
        <div class="card"><div class="label">File Scans</div><div class="value" id="cFile">0</div></div>
        <div class="card"><div class="label">Extension Scans</div><div class="value" id="cExt">0</div></div>
        <div class="card"><div class="label">Threats</div><div class="value" id="cThreats">0</div></div>
    </div>

    <div class="controls">
        <input id="search" type="text" placeholder="Search logs by ID, target, or result...">
        <select id="typeFilter">
            <option value="">All Types</option>
            <option value="url">URL Only</option>
            <option value="file">File Only</option>
        </select>
    </div>

    <table>
        <thead>
            <tr><th>Scan ID</th><th>Time</th><th>Type</th><th>Target Payload</th>
                <th>Prediction</th><th>Confidence</th><th></th></tr>
        </thead>
        <tbody id="rows"><tr><td colspan="7" class="empty">Fetching scan history...</td></tr></tbody>
    </table>

    <script>
        const esc = s => String(s ?? '').replace(/[&<>"']/g, c =>
            ({'&':'&amp;','<':'&lt;','>':'&gt;','"':'&quot;',"'":'&#39;'}[c]));

        async function refreshLogs() {
            const q = encodeURIComponent(document.getElementById('search').value);
            const t = document.getElementById('typeFilter').value;
            const res = await fetch('/api/logs?search=' + q + '&type=' + t);
            if (!res.ok) return;
            const data = await res.json();

            document.getElementById('cTotal').textContent = data.total;
            document.getElementById('cURL').textContent = data.url_scans;
            document.getElementById('cFile').textContent = data.file_scans;
            document.getElementById('cExt').textContent = data.extension_scans;
            document.getElementById('cThreats').textContent = data.threats;

            const rows = document.getElementById('rows');
            if (!data.logs.length) {
                rows.innerHTML = '<tr><td colspan="7" class="empty">No logs found matching your filters.</td></tr>';
                return;
            }
            rows.innerHTML = data.logs.map(l =>
                '<tr><td class="mono">' + esc(l.id) + '</td>' +
                '<td>' + new Date(l.time).toLocaleTimeString() + '</td>' +
                '<td>' + esc(l.type) + '</td>' +
                '<td class="mono">' + esc(l.target) + '</td>' +
                '<td><span class="verdict ' + esc(l.result) + '">' + esc(l.result) + '</span>' +
                ' <a class="report" href="' + esc(l.report_url) + '" target="_blank">Report</a></td>' +
                '<td>' + esc(l.confidence) + '</td>' +
                '<td><button class="del" onclick="deleteLog(\'' + esc(l.id) + '\')">&#x2715;</button></td></tr>'
            ).join('');
        }

        async function refreshStatus() {
            const res = await fetch('/api/status');
            if (!res.ok) return;
            const data = await res.json();
            const banner = document.getElementById('banner');
            banner.textContent = 'EXTENSION: ' + data.banner;
            banner.className = 'banner ' + (data.is_online ? 'online' : 'offline');
            document.getElementById('lastPing').textContent = 'Last ping: ' + data.last_ping;
        }

        async function deleteLog(id) {
            await fetch('/api/logs/' + encodeURIComponent(id), { method: 'DELETE' });
            refreshLogs();
        }

        document.getElementById('search').addEventListener('input', refreshLogs);
        document.getElementById('typeFilter').addEventListener('change', refreshLogs);

        refreshLogs();
        refreshStatus();
        setInterval(refreshLogs, {{.HistoryPollMs}});
        setInterval(refreshStatus, {{.StatusPollMs}});
    </script>
</body>
</html>{{end}}`

// GetTemplates returns the parsed dashboard templates.
func GetTemplates() *template.Template {
	return template.Must(template.New("dashboard").Parse(dashboardHTML))
}
