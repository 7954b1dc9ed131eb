package web

const indexHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>locus</title>
    <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
    <link rel="stylesheet" href="/static/app.css" />
  </head>
  <body>
    <div id="map"
         data-lat="{{index .State.Map.Center 0}}"
         data-lng="{{index .State.Map.Center 1}}"
         data-zoom="{{.State.Map.Zoom}}"
         data-tiles="{{.State.Map.TileURL}}"></div>

    <button id="toggle" class="toggle" type="button">{{.State.PanelLabel}}</button>

    <aside id="panel" class="panel{{if not .State.PanelShown}} hidden{{end}}">
      {{if .State.LoadError}}<div id="error" class="error">{{.State.LoadError}}</div>{{else}}<div id="error" class="error hidden"></div>{{end}}
      <section>
        <h2 class="panelTitle">Available</h2>
        <ul id="available" class="list">
          {{range .State.Available}}
            <li class="row" data-from="available" data-id="{{.ID}}">{{.Name}}
              {{if .Children}}<ul class="list nested">{{range .Children}}<li class="row child" data-from="available" data-id="{{.ID}}">{{.Name}}</li>{{end}}</ul>{{end}}
            </li>
          {{end}}
        </ul>
      </section>
      <section>
        <h2 class="panelTitle">Active</h2>
        <ul id="active" class="list">
          {{range .State.Active}}
            <li class="row" data-from="active" data-id="{{.ID}}">{{.Name}}
              {{if .Children}}<ul class="list nested">{{range .Children}}<li class="row child" data-from="active" data-id="{{.ID}}">{{.Name}}</li>{{end}}</ul>{{end}}
            </li>
          {{end}}
        </ul>
      </section>
    </aside>

    <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
    <script src="/static/app.js"></script>
  </body>
</html>
`

const appCSS = `
:root{
  --bg: #0b0c10;
  --panel: rgba(17,18,23,0.92);
  --text: #e8eaf0;
  --muted: #a6adbb;
  --line: rgba(255,255,255,0.08);
  --sans: ui-sans-serif, system-ui, -apple-system, Segoe UI, Roboto, Helvetica, Arial;
}
*{box-sizing:border-box}
html,body{height:100%; margin:0}
body{font-family:var(--sans); background:var(--bg); color:var(--text)}
#map{position:absolute; inset:0}
.toggle{
  position:absolute; top:12px; right:12px; z-index:1000;
  width:32px; height:32px; border-radius:8px;
  border:1px solid var(--line); background:var(--panel); color:var(--text);
  font-size:18px; cursor:pointer;
}
.panel{
  position:absolute; top:52px; right:12px; bottom:12px; z-index:1000;
  width:300px; overflow:auto;
  background:var(--panel); border:1px solid var(--line); border-radius:12px;
}
.hidden{display:none}
.panelTitle{
  margin:0; padding:12px 14px;
  font-size:12px; letter-spacing:0.4px; text-transform:uppercase;
  color:var(--muted); border-bottom:1px solid var(--line);
}
.list{list-style:none; margin:0; padding:0}
.row{padding:8px 14px; border-bottom:1px solid var(--line); cursor:pointer}
.row:hover{background:rgba(255,255,255,0.04)}
.nested{margin-top:6px}
.child{padding-left:18px; border-bottom:none; color:var(--muted)}
.error{padding:10px 14px; color:#ff8a80; border-bottom:1px solid var(--line)}
`

const appJS = `(function () {
  "use strict";

  var el = document.getElementById("map");
  var map = L.map(el).setView([+el.dataset.lat, +el.dataset.lng], +el.dataset.zoom);
  L.tileLayer(el.dataset.tiles, { maxZoom: 19 }).addTo(map);
  var layer = L.layerGroup().addTo(map);

  function post(url, body) {
    return fetch(url, {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: body ? JSON.stringify(body) : null
    }).then(function (r) { return r.json(); });
  }

  function row(from, n) {
    var li = document.createElement("li");
    li.className = "row";
    li.textContent = n.name;
    li.addEventListener("click", function (ev) {
      ev.stopPropagation();
      post("/api/move", { from: from, id: n.id }).then(function (r) { render(r.state || r); });
    });
    if (n.children && n.children.length) {
      var ul = document.createElement("ul");
      ul.className = "list nested";
      n.children.forEach(function (c) {
        var child = row(from, c);
        child.className = "row child";
        ul.appendChild(child);
      });
      li.appendChild(ul);
    }
    return li;
  }

  function fill(id, from, nodes) {
    var ul = document.getElementById(id);
    ul.innerHTML = "";
    (nodes || []).forEach(function (n) { ul.appendChild(row(from, n)); });
  }

  function render(s) {
    if (!s || !s.map) { return; }
    fill("available", "available", s.available);
    fill("active", "active", s.active);

    layer.clearLayers();
    (s.markers || []).forEach(function (m) {
      L.marker([m.lat, m.lng])
        .bindTooltip(m.name)
        .on("click", function () {
          post("/api/markers/" + m.node_id + "/click").then(render);
        })
        .addTo(layer);
    });

    document.getElementById("toggle").textContent = s.panel_label;
    document.getElementById("panel").classList.toggle("hidden", !s.panel_shown);

    var err = document.getElementById("error");
    err.textContent = s.load_error || "";
    err.classList.toggle("hidden", !s.load_error);
  }

  document.getElementById("toggle").addEventListener("click", function () {
    post("/api/toggle").then(render);
  });

  fetch("/api/state").then(function (r) { return r.json(); }).then(render);
})();
`
