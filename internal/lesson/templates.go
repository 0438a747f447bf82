package lesson

// pageTemplate is the html/template for each lesson page.
const pageTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{ .Lesson.Title }} | {{ .SiteTitle }}</title>
  <link rel="stylesheet" href="{{ .BasePath }}style.css">
</head>
<body data-live="{{ .Live }}" data-base="{{ .BasePath }}">
  <nav class="sidebar">
    <h2 class="project-title"><a href="{{ .BasePath }}index.html">{{ .SiteTitle }}</a></h2>
    <ul class="lesson-nav">
      {{- range .Nav }}
      <li{{ if .Active }} class="active"{{ end }}><a href="{{ .Href }}">{{ .Title }}</a></li>
      {{- end }}
    </ul>
  </nav>
  <main class="content">
    <article class="page-content">
      {{ .Lesson.Body }}
    </article>
    {{- if .Surfaces }}
    <section class="surfaces">
      {{- range .Surfaces }}
      <figure class="surface">
        <canvas id="{{ .Name }}Canvas" data-surface="{{ .Name }}" data-width="{{ .Width }}" data-height="{{ .Height }}"{{ if .Image }} data-image="{{ .Image }}"{{ end }} style="width: {{ .Width }}px; height: {{ .Height }}px"></canvas>
        <figcaption>{{ .Name }}</figcaption>
      </figure>
      {{- end }}
    </section>
    {{- end }}
  </main>
  <aside class="glossary">
    <div class="glossary-head">
      <input type="search" id="termSearch" placeholder="搜索术语" autocomplete="off">
      <span id="termCount">{{ .Count }}</span>
      <button type="button" id="expandAll">全部展开</button>
      <button type="button" id="collapseAll">全部收起</button>
    </div>
    <div id="termList">{{ .Glossary }}</div>
  </aside>
  <div id="termTooltip" class="term-tooltip" role="tooltip" hidden></div>
  <script src="{{ .BasePath }}termlink.js"></script>
</body>
</html>`

// indexTemplate lists every lesson.
const indexTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{ .SiteTitle }}</title>
  <link rel="stylesheet" href="{{ .BasePath }}style.css">
</head>
<body class="index" data-live="{{ .Live }}">
  <main class="content">
    <h1>{{ .SiteTitle }}</h1>
    {{- if .Nav }}
    <ul class="lesson-index">
      {{- range .Nav }}
      <li><a href="{{ .Href }}">{{ .Title }}</a></li>
      {{- end }}
    </ul>
    {{- else }}
    <p class="card">没有课程。</p>
    {{- end }}
  </main>
</body>
</html>`

const cssContent = `:root {
  --bg: #fffdf6;
  --text: #243447;
  --muted: #6f7e90;
  --border: #d9d7cf;
  --accent: #d35f29;
  --term: #2f8fbd;
  --highlight: #fff1c9;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  display: grid;
  grid-template-columns: 220px minmax(0, 1fr) 340px;
  min-height: 100vh;
  color: var(--text);
  background: var(--bg);
  font: 15px/1.7 "LXGW WenKai", "Source Han Sans SC", sans-serif;
}

body.index { display: block; }

.sidebar { padding: 16px; border-right: 1px solid var(--border); }
.lesson-nav { list-style: none; padding: 0; }
.lesson-nav li.active a { color: var(--accent); font-weight: 600; }

.content { padding: 24px 32px; max-width: 960px; }
.surfaces { display: grid; gap: 16px; }
.surface { margin: 0; }
.surface canvas { display: block; border: 1px solid var(--border); border-radius: 8px; }
.surface figcaption { color: var(--muted); font-size: 12px; }

.glossary { padding: 16px; border-left: 1px solid var(--border); max-height: 100vh; overflow-y: auto; position: sticky; top: 0; }
.glossary-head { display: flex; flex-wrap: wrap; gap: 8px; align-items: center; margin-bottom: 12px; }
#termSearch { flex: 1 1 100%; padding: 6px 10px; border: 1px solid var(--border); border-radius: 6px; }
#termCount { color: var(--muted); font-size: 12px; }

.term-card { border: 1px solid var(--border); border-radius: 8px; padding: 8px 12px; margin-bottom: 8px; background: #fff; transition: background 0.3s; }
.term-card summary { cursor: pointer; }
.term-card.term-highlight { background: var(--highlight); border-color: var(--accent); }
.term-level { font-size: 12px; color: var(--muted); margin-left: 6px; }
.term-row { margin: 4px 0; }
.term-row b { color: var(--muted); font-weight: 500; margin-right: 4px; }
.card { color: var(--muted); }

.tech-term { border-bottom: 1px dashed var(--term); cursor: help; }
.tech-term:focus { outline: 2px solid var(--term); outline-offset: 1px; }

.term-tooltip {
  position: fixed;
  z-index: 10;
  max-width: 280px;
  padding: 8px 12px;
  border-radius: 8px;
  background: #243447;
  color: #fff;
  font-size: 13px;
  pointer-events: none;
}
.term-tooltip .term-alias { color: #b7c7d6; font-weight: 400; }

@media (max-width: 1100px) {
  body { grid-template-columns: minmax(0, 1fr); }
  .sidebar, .glossary { border: 0; position: static; max-height: none; }
}
`

const jsContent = `(function () {
  "use strict";

  var body = document.body;
  var live = body.dataset.live === "true";
  var base = body.dataset.base || "";
  var tip = document.getElementById("termTooltip");
  var list = document.getElementById("termList");
  var search = document.getElementById("termSearch");
  var count = document.getElementById("termCount");
  var canvases = Array.prototype.slice.call(document.querySelectorAll("canvas[data-surface]"));
  var GAP = 14, INSET = 8;

  var socket = null;
  var active = null;
  var nextMarker = 0;

  function markerOf(el) {
    var m = el && el.closest ? el.closest(".tech-term") : null;
    if (m && !m.dataset.markerId) m.dataset.markerId = "m" + (++nextMarker);
    return m;
  }

  function canvasFor(name) {
    for (var i = 0; i < canvases.length; i++) {
      if (canvases[i].dataset.surface === name) return canvases[i];
    }
    return null;
  }

  function paint(canvas, src, w, h) {
    var img = new Image();
    img.onload = function () {
      var dpr = window.devicePixelRatio || 1;
      canvas.style.width = w + "px";
      canvas.style.height = h + "px";
      canvas.width = Math.floor(w * dpr);
      canvas.height = Math.floor(h * dpr);
      canvas.getContext("2d").drawImage(img, 0, 0, canvas.width, canvas.height);
    };
    img.src = src;
  }

  function local(canvas, ev) {
    var r = canvas.getBoundingClientRect();
    return { x: ev.clientX - r.left, y: ev.clientY - r.top };
  }

  function showTip(st) {
    if (!st || !st.visible) {
      tip.hidden = true;
      return;
    }
    tip.innerHTML = st.content;
    tip.hidden = false;
    tip.style.left = st.left + "px";
    tip.style.top = st.top + "px";
  }

  function flash(keys) {
    if (!keys || !keys.length) return;
    var card = list.querySelector('details.term-card[data-term-key="' + keys[0] + '"]');
    if (card) card.scrollIntoView({ block: "nearest", behavior: "smooth" });
  }

  /* live mode: every event goes to the session */

  function send(msg) {
    if (socket && socket.readyState === WebSocket.OPEN) socket.send(JSON.stringify(msg));
  }

  function resizeMessage() {
    var surfaces = {};
    canvases.forEach(function (c) {
      surfaces[c.dataset.surface] = { w: c.clientWidth || Number(c.dataset.width), h: c.clientHeight || Number(c.dataset.height) };
    });
    return {
      type: "resize",
      viewport: { w: window.innerWidth, h: window.innerHeight },
      tooltip: { w: tip.offsetWidth || 280, h: tip.offsetHeight || 96 },
      dpr: window.devicePixelRatio || 1,
      surfaces: surfaces
    };
  }

  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    socket = new WebSocket(proto + location.host + "/ws/session");
    socket.onopen = function () { send(resizeMessage()); };
    socket.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      switch (msg.type) {
        case "tooltip":
          showTip(msg.tooltip);
          break;
        case "glossary":
          list.innerHTML = msg.glossary.html;
          count.textContent = msg.glossary.count;
          if (search.value !== msg.glossary.filter) search.value = msg.glossary.filter;
          break;
        case "highlight":
          flash(msg.keys);
          break;
        case "cursor":
          var c = canvasFor(msg.surface);
          if (c) c.style.cursor = msg.cursor;
          break;
        case "surface":
          var s = canvasFor(msg.surface);
          if (s) paint(s, msg.image, msg.width, msg.height);
          break;
        case "error":
          console.warn("termlink:", msg.error);
          break;
      }
    };
  }

  function bindLive() {
    document.addEventListener("mouseover", function (ev) {
      var m = markerOf(ev.target);
      if (!m) return;
      active = m;
      send({ type: "marker_enter", marker: m.dataset.markerId, key: m.dataset.termKey, x: ev.clientX, y: ev.clientY });
    });
    document.addEventListener("mousemove", function (ev) {
      if (active && !tip.hidden) send({ type: "marker_move", x: ev.clientX, y: ev.clientY });
    });
    document.addEventListener("mouseout", function (ev) {
      if (!active) return;
      var rel = markerOf(ev.relatedTarget);
      if (rel === active) return;
      if (!rel) active = null;
      send({ type: "marker_leave", related: rel ? rel.dataset.markerId : "" });
    });
    document.addEventListener("focusin", function (ev) {
      var m = markerOf(ev.target);
      if (!m) return;
      active = m;
      var r = m.getBoundingClientRect();
      send({ type: "marker_focus", marker: m.dataset.markerId, key: m.dataset.termKey, rect: { x: r.left, y: r.top, w: r.width, h: r.height } });
    });
    document.addEventListener("focusout", function (ev) {
      var m = markerOf(ev.target);
      if (m) send({ type: "marker_blur", marker: m.dataset.markerId });
    });

    canvases.forEach(function (c) {
      var name = c.dataset.surface;
      c.addEventListener("click", function (ev) {
        var p = local(c, ev);
        send({ type: "click", surface: name, x: p.x, y: p.y });
      });
      c.addEventListener("mousemove", function (ev) {
        var p = local(c, ev);
        send({ type: "pointer_move", surface: name, x: p.x, y: p.y });
      });
      c.addEventListener("mouseleave", function () {
        send({ type: "pointer_leave", surface: name });
      });
    });

    search.addEventListener("input", function () { send({ type: "search", query: search.value }); });
    document.getElementById("expandAll").addEventListener("click", function () { send({ type: "expand_all" }); });
    document.getElementById("collapseAll").addEventListener("click", function () { send({ type: "collapse_all" }); });
    list.addEventListener("toggle", function (ev) {
      var card = ev.target;
      if (card.dataset && card.dataset.termKey) send({ type: "toggle", key: card.dataset.termKey, open: card.open });
    }, true);

    var pending = null;
    window.addEventListener("resize", function () {
      clearTimeout(pending);
      pending = setTimeout(function () { send(resizeMessage()); }, 150);
    });
    connect();
  }

  /* static mode: glossary.json and surfaces.json written by the build */

  function place(x, y) {
    var w = tip.offsetWidth, h = tip.offsetHeight;
    var vw = window.innerWidth, vh = window.innerHeight;
    var left = x + GAP, top = y + GAP;
    if (left + w > vw - INSET) left = x - w - GAP;
    if (top + h > vh - INSET) top = y - h - GAP;
    left = Math.max(INSET, Math.min(left, vw - w - INSET));
    top = Math.max(INSET, Math.min(top, vh - h - INSET));
    tip.style.left = left + "px";
    tip.style.top = top + "px";
  }

  function bindStatic(terms, surfaces) {
    var byKey = {};
    terms.forEach(function (t) { byKey[t.key] = t; });
    var timer = null;

    function escape(s) {
      var d = document.createElement("div");
      d.textContent = s || "";
      return d.innerHTML;
    }

    function show(m, x, y) {
      var t = byKey[m.dataset.termKey];
      if (!t) return;
      active = m;
      tip.innerHTML = "<strong>" + escape(t.name) + ' <span class="term-alias">' + escape(t.alias) + "</span></strong><div>" + escape(t.plain) + "</div>";
      tip.hidden = false;
      place(x, y);
    }

    function hide() {
      tip.hidden = true;
      active = null;
    }

    document.addEventListener("mouseover", function (ev) {
      var m = markerOf(ev.target);
      if (m) show(m, ev.clientX, ev.clientY);
    });
    document.addEventListener("mousemove", function (ev) {
      if (active && !tip.hidden) place(ev.clientX, ev.clientY);
    });
    document.addEventListener("mouseout", function (ev) {
      if (!active) return;
      var rel = markerOf(ev.relatedTarget);
      if (rel === active) return;
      if (!rel) hide();
    });
    document.addEventListener("focusin", function (ev) {
      var m = markerOf(ev.target);
      if (!m) return;
      var r = m.getBoundingClientRect();
      show(m, r.left + r.width / 2, r.bottom + 6);
    });
    document.addEventListener("focusout", function (ev) {
      if (markerOf(ev.target)) hide();
    });

    function cards() {
      return Array.prototype.slice.call(list.querySelectorAll("details.term-card"));
    }

    function filter() {
      var q = search.value.trim().toLowerCase();
      var shown = 0;
      cards().forEach(function (card) {
        var t = byKey[card.dataset.termKey];
        var ok = !q || (t && t.search.indexOf(q) >= 0);
        card.hidden = !ok;
        if (ok) shown++;
      });
      count.textContent = shown + "/" + terms.length;
    }

    function highlight(keys) {
      keys = keys.filter(function (k, i) { return k && keys.indexOf(k) === i; });
      if (!keys.length) return;
      var missing = keys.some(function (k) {
        var card = list.querySelector('details.term-card[data-term-key="' + k + '"]');
        return !card || card.hidden;
      });
      if (missing) {
        search.value = "";
        filter();
      }
      cards().forEach(function (card) { card.classList.remove("term-highlight"); });
      keys.forEach(function (k) {
        var card = list.querySelector('details.term-card[data-term-key="' + k + '"]');
        if (!card) return;
        card.open = true;
        card.classList.add("term-highlight");
      });
      flash(keys);
      clearTimeout(timer);
      timer = setTimeout(function () {
        cards().forEach(function (card) { card.classList.remove("term-highlight"); });
      }, 2600);
    }

    function hit(name, x, y) {
      var zones = (surfaces[name] && surfaces[name].zones) || [];
      for (var i = 0; i < zones.length; i++) {
        var z = zones[i];
        if (x >= z.x && x <= z.x + z.w && y >= z.y && y <= z.y + z.h) return z;
      }
      return null;
    }

    canvases.forEach(function (c) {
      var name = c.dataset.surface;
      if (c.dataset.image) paint(c, c.dataset.image, Number(c.dataset.width), Number(c.dataset.height));
      c.addEventListener("click", function (ev) {
        var p = local(c, ev);
        var z = hit(name, p.x, p.y);
        if (z && z.term_keys && z.term_keys.length) highlight(z.term_keys);
      });
      c.addEventListener("mousemove", function (ev) {
        var p = local(c, ev);
        c.style.cursor = hit(name, p.x, p.y) ? "pointer" : "default";
      });
      c.addEventListener("mouseleave", function () { c.style.cursor = "default"; });
    });

    search.addEventListener("input", filter);
    document.getElementById("expandAll").addEventListener("click", function () {
      cards().forEach(function (card) { card.open = true; });
    });
    document.getElementById("collapseAll").addEventListener("click", function () {
      cards().forEach(function (card) { card.open = false; });
    });
  }

  if (!tip || !list || !search || !count) return;
  if (live) {
    bindLive();
    return;
  }
  Promise.all([
    fetch(base + "glossary.json").then(function (r) { return r.json(); }),
    fetch(base + "surfaces.json").then(function (r) { return r.json(); }).catch(function () { return {}; })
  ]).then(function (res) { bindStatic(res[0], res[1]); });
})();
`
