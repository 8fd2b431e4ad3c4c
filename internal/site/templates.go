package site

// pageTemplate is the single-page layout: splash, sidebar navigation and
// one slot per section holding either the rendered section or its skeleton.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" style="--anim-duration: {{ms .Animation.Duration}}ms; --anim-stagger: {{ms .Animation.Stagger}}ms; --anim-easing: {{css .Animation.Easing}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Site.Title}}</title>
  <meta name="description" content="{{.Site.Description}}">
  <meta name="keywords" content="{{join .Site.Keywords ", "}}">
  <meta name="author" content="{{.Site.Author}}">
  <meta property="og:title" content="{{.Site.Title}}">
  <meta property="og:description" content="{{.Site.Description}}">
  {{with .Site.SiteURL}}<meta property="og:url" content="{{.}}">{{end}}
  {{with .Site.OGImage}}<meta property="og:image" content="{{.}}">{{end}}
  <link rel="icon" href="/assets/favicon.ico">
  <link rel="stylesheet" href="/static/style.css">
  <script>document.documentElement.classList.add('js');</script>
  {{with .MeasurementID}}
  <script async src="https://www.googletagmanager.com/gtag/js?id={{.}}"></script>
  <script>window.dataLayer = window.dataLayer || []; function gtag(){dataLayer.push(arguments);} gtag('js', new Date()); gtag('config', {{.}});</script>
  {{end}}
</head>
<body>
  <div id="splash" class="splash"{{if eq .Shell.Phase "ready"}} hidden{{end}}>
    <div class="spinner" aria-hidden="true"></div>
    <p class="splash-name">{{.Personal.Name}}</p>
    <p class="splash-title">{{.Personal.Title}}</p>
  </div>

  <aside class="sidebar">
    <div class="sidebar-header">
      {{with .Personal.AvatarURL}}<img class="avatar" src="{{.}}" alt="">{{end}}
      <h2>{{.Personal.Name}}</h2>
      <p class="muted">{{.Personal.Title}}</p>
    </div>
    <nav aria-label="Sections">
      {{range .Nav}}<a href="#{{.ID}}" data-section="{{.ID}}"{{if .Current}} aria-current="true"{{end}}>{{.Label}}</a>
      {{end}}
    </nav>
    <ul class="social">
      {{range .Social}}<li><a href="{{.URL}}" target="_blank" rel="noopener noreferrer" data-contact-method="{{lower .Platform}}">{{.Platform}}</a></li>
      {{end}}
    </ul>
  </aside>

  <main id="main" class="main" data-session="{{.Shell.SessionID}}">
    {{range .Sections}}{{if .Loaded}}{{.Body}}{{else}}{{template "skeleton" .}}{{end}}
    {{end}}
  </main>

  <noscript><p class="noscript"><a href="/?full=1">View the full page without JavaScript</a></p></noscript>
  <script type="application/json" id="client-config">{{.Client}}</script>
  <script src="/static/script.js" defer></script>
</body>
</html>
{{define "skeleton"}}<section id="{{.ID}}" class="section skeleton {{.Placeholder}}" data-src="/sections/{{.ID}}" aria-busy="true">
  <div class="bone bone-title"></div>
  <div class="bone"></div>
  <div class="bone"></div>
  <div class="bone bone-short"></div>
</section>{{end}}`

// sectionsTemplate holds one definition per page section. Each renders a
// complete <section> element so it can replace its skeleton in place.
const sectionsTemplate = `{{define "section-home"}}<section id="home" class="section hero">
  <p class="eyebrow">{{.Personal.Location}}</p>
  <h1>{{.Personal.Name}}</h1>
  <p class="lead">{{.Personal.Title}}</p>
  <p>{{.Personal.ShortBio}}</p>
  <div class="actions">
    <a class="button" href="#projects" data-section="projects">View Projects</a>
    <a class="button button-outline" href="/resume" target="_blank" rel="noopener">Download Resume</a>
  </div>
  {{if .Featured}}
  <div class="cards">
    {{range $i, $p := .Featured}}<article class="card reveal" style="--i: {{$i}}">
      <h3>{{$p.Title}}</h3>
      <p>{{$p.Description}}</p>
      <div class="badges">{{range $p.Technologies}}<span class="badge">{{.}}</span>{{end}}</div>
    </article>
    {{end}}
  </div>
  {{end}}
</section>{{end}}

{{define "section-about"}}<section id="about" class="section">
  <h2>About Me</h2>
  <div class="prose">{{.Bio}}</div>
  <div class="grid">
    {{with .Education}}<div class="card">
      <h3>Education</h3>
      <p><strong>{{.Degree}}</strong></p>
      <p class="muted">{{.Institution}}{{with .Year}} &middot; {{.}}{{end}}</p>
    </div>{{end}}
    {{if .Languages}}<div class="card">
      <h3>Languages</h3>
      <ul>{{range .Languages}}<li>{{.Name}} <span class="muted">({{.Level}})</span></li>{{end}}</ul>
    </div>{{end}}
    {{if .Strengths}}<div class="card">
      <h3>Key Strengths</h3>
      <div class="badges">{{range .Strengths}}<span class="badge">{{.}}</span>{{end}}</div>
    </div>{{end}}
  </div>
  {{if .Achievements}}<h3>Key Achievements</h3>
  <ul class="checklist">{{range .Achievements}}<li>{{.}}</li>{{end}}</ul>{{end}}
</section>{{end}}

{{define "section-experience"}}<section id="experience" class="section">
  <h2>Experience</h2>
  <ol class="timeline">
    {{range $i, $e := .Experience}}<li class="card reveal" style="--i: {{$i}}">
      <header>
        <h3>{{$e.Role}} <span class="muted">@ {{$e.Company}}</span></h3>
        <p class="muted">{{$e.Duration}} &middot; {{$e.Location}}</p>
      </header>
      <p>{{$e.Description}}</p>
      {{if $e.Metrics}}<dl class="metrics">{{range $e.Metrics}}<div><dt>{{.Label}}</dt><dd>{{.Value}}</dd></div>{{end}}</dl>{{end}}
      {{if $e.Achievements}}<ul class="checklist">{{range $e.Achievements}}<li>{{.}}</li>{{end}}</ul>{{end}}
      <div class="badges">{{range $e.Technologies}}<span class="badge">{{.}}</span>{{end}}</div>
    </li>
    {{end}}
  </ol>
</section>{{end}}

{{define "section-projects"}}<section id="projects" class="section">
  <h2>Projects</h2>
  {{template "filter-bar" .ProjectFilter}}
  {{if .Projects.Empty}}
  <div class="empty">
    <p>No projects found matching your criteria.</p>
    <a href="{{.ProjectFilter.ClearURL}}" data-filter="{{.ProjectFilter.ClearQuery}}">Clear search</a>
  </div>
  {{else}}
  <div class="cards">
    {{range $i, $p := .Projects.Items}}<article class="card reveal" style="--i: {{$i}}">
      {{with $p.ImageURL}}<img src="{{.}}" alt="" loading="lazy">{{end}}
      <h3>{{$p.Title}}{{if $p.Featured}} <span class="badge badge-accent">Featured</span>{{end}}</h3>
      <p>{{$p.Description}}</p>
      <div class="badges">{{range $p.Technologies}}<span class="badge">{{.}}</span>{{end}}</div>
      <p class="links">
        {{with $p.GithubURL}}<a href="{{.}}" target="_blank" rel="noopener noreferrer">Code</a>{{end}}
        {{with $p.LiveURL}}<a href="{{.}}" target="_blank" rel="noopener noreferrer">Live Demo</a>{{end}}
      </p>
    </article>
    {{end}}
  </div>
  {{end}}
</section>{{end}}

{{define "section-skills"}}<section id="skills" class="section">
  <h2>Skills</h2>
  {{template "filter-bar" .SkillFilter}}
  {{if .Skills.Empty}}
  <div class="empty">
    <p>No skills found matching your criteria.</p>
    <a href="{{.SkillFilter.ClearURL}}" data-filter="{{.SkillFilter.ClearQuery}}">Clear search</a>
  </div>
  {{else}}
  <ul class="skills">
    {{range $i, $s := .Skills.Items}}<li class="reveal" style="--i: {{$i}}">
      <div class="skill-head"><span>{{$s.Name}}</span><span class="muted">{{$s.Years}}y &middot; {{$s.Level}}%</span></div>
      <div class="meter" role="meter" aria-valuemin="0" aria-valuemax="100" aria-valuenow="{{$s.Level}}"><span style="width: {{$s.Level}}%"></span></div>
    </li>
    {{end}}
  </ul>
  {{end}}
</section>{{end}}

{{define "filter-bar"}}<div class="filters">
  <div class="chips" role="tablist">
    {{range .Categories}}<a href="{{.URL}}" data-filter="{{.Query}}" role="tab"{{if .Active}} class="active" aria-selected="true"{{end}}>{{.Label}} <span class="count">{{.Count}}</span></a>
    {{end}}
  </div>
  <form class="search" method="get" action="/" data-filter-form>
    <input type="hidden" name="full" value="1">
    <input type="hidden" name="{{.CategoryKey}}" value="{{.State.ActiveCategory}}">
    <input type="search" name="{{.QueryKey}}" value="{{.State.Query}}" placeholder="Search..." aria-label="Search">
  </form>
  <p class="muted">Showing {{.Shown}} of {{.Total}}</p>
</div>{{end}}

{{define "section-contact"}}<section id="contact" class="section">
  <h2>Get In Touch</h2>
  <div class="grid">
    <div>
      {{with .Contact.Availability}}<p class="lead">{{.}}</p>{{end}}
      <ul class="contact-info">
        <li><a href="mailto:{{.Contact.Email}}" data-contact-method="email">{{.Contact.Email}}</a></li>
        {{with .Contact.Location}}<li>{{.}}</li>{{end}}
        {{with .Contact.LinkedIn}}<li><a href="{{.}}" target="_blank" rel="noopener noreferrer" data-contact-method="linkedin">LinkedIn</a></li>{{end}}
        {{with .Contact.GitHub}}<li><a href="{{.}}" target="_blank" rel="noopener noreferrer" data-contact-method="github">GitHub</a></li>{{end}}
      </ul>
    </div>
    {{template "contact-form" .Form}}
  </div>
</section>{{end}}

{{define "contact-form"}}<form class="contact-form" method="post" action="/contact" data-contact novalidate>
  {{if eq .Status "success"}}<div class="banner banner-success" role="status" data-banner>{{.Message}}</div>{{end}}
  {{if eq .Status "error"}}<div class="banner banner-error" role="alert" data-banner>{{.Message}}</div>{{end}}
  <div class="hp" aria-hidden="true">
    <label for="website">Website</label>
    <input id="website" name="website" type="text" tabindex="-1" autocomplete="off">
  </div>
  <label for="name">Name</label>
  <input id="name" name="name" type="text" value="{{.Fields.Name}}"{{with .Errors.name}} aria-invalid="true"{{end}}>
  {{with .Errors.name}}<p class="field-error">{{.}}</p>{{end}}
  <label for="email">Email</label>
  <input id="email" name="email" type="email" value="{{.Fields.Email}}"{{with .Errors.email}} aria-invalid="true"{{end}}>
  {{with .Errors.email}}<p class="field-error">{{.}}</p>{{end}}
  <label for="message">Message</label>
  <textarea id="message" name="message" rows="5"{{with .Errors.message}} aria-invalid="true"{{end}}>{{.Fields.Message}}</textarea>
  {{with .Errors.message}}<p class="field-error">{{.}}</p>{{end}}
  <button class="button" type="submit"{{if eq .Status "submitting"}} disabled{{end}}>{{if eq .Status "submitting"}}Sending...{{else}}Send Message{{end}}</button>
</form>{{end}}`

// errorTemplate is the full-page recovery screen and the not-found page.
const errorTemplate = `{{define "error"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Heading}}</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body class="error-page">
  <div class="card">
    <p class="status">{{.Status}}</p>
    <h1>{{.Heading}}</h1>
    <p>{{.Text}}</p>
    <div class="actions">
      {{with .RetryURL}}<a class="button" href="{{.}}">Try again</a>{{end}}
      <a class="button button-outline" href="/">Go home</a>
    </div>
    {{with .Detail}}<details open><summary>Error details</summary><pre>{{.}}</pre></details>{{end}}
  </div>
</body>
</html>{{end}}`

const cssContent = `:root {
  --bg: #f8fafc;
  --surface: #ffffff;
  --text: #0f172a;
  --muted: #64748b;
  --border: #e2e8f0;
  --accent: #2563eb;
  --accent-light: #dbeafe;
  --success: #16a34a;
  --danger: #dc2626;
  --sidebar-width: 280px;
}

@media (prefers-color-scheme: dark) {
  :root {
    --bg: #0f172a;
    --surface: #1e293b;
    --text: #e2e8f0;
    --muted: #94a3b8;
    --border: #334155;
    --accent: #60a5fa;
    --accent-light: #1e3a8a;
  }
}

* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, -apple-system, sans-serif; background: var(--bg); color: var(--text); line-height: 1.6; }
a { color: var(--accent); }
.muted { color: var(--muted); }

.splash { display: none; }
.js .splash { position: fixed; inset: 0; z-index: 50; display: flex; flex-direction: column; align-items: center; justify-content: center; background: var(--bg); }
.js .splash[hidden] { display: none; }
.spinner { width: 48px; height: 48px; border: 4px solid var(--border); border-top-color: var(--accent); border-radius: 50%; animation: spin 800ms linear infinite; }
.splash-name { font-size: 1.5rem; font-weight: 700; margin: 1rem 0 0; }
.splash-title { color: var(--muted); margin: 0; }
@keyframes spin { to { transform: rotate(360deg); } }

.sidebar { position: fixed; top: 0; bottom: 0; left: 0; width: var(--sidebar-width); padding: 2rem 1.5rem; background: var(--surface); border-right: 1px solid var(--border); overflow-y: auto; }
.sidebar h2 { margin: 0.5rem 0 0; }
.avatar { width: 96px; height: 96px; border-radius: 50%; object-fit: cover; }
.sidebar nav { display: flex; flex-direction: column; margin: 2rem 0; }
.sidebar nav a { padding: 0.5rem 0.75rem; border-radius: 6px; color: var(--text); text-decoration: none; }
.sidebar nav a[aria-current] { background: var(--accent-light); color: var(--accent); font-weight: 600; }
.social { list-style: none; padding: 0; display: flex; flex-wrap: wrap; gap: 0.75rem; }

.main { margin-left: var(--sidebar-width); height: 100vh; overflow-y: auto; }
.section { padding: 4rem 3rem; max-width: 1100px; }
.hero h1 { font-size: 3rem; margin: 0; }
.eyebrow { text-transform: uppercase; letter-spacing: 0.1em; color: var(--muted); }
.lead { font-size: 1.25rem; color: var(--muted); }
.actions { display: flex; gap: 1rem; margin: 1.5rem 0; }
.button { display: inline-block; padding: 0.65rem 1.25rem; border-radius: 8px; border: 1px solid var(--accent); background: var(--accent); color: #fff; text-decoration: none; font: inherit; cursor: pointer; }
.button:disabled { opacity: 0.6; cursor: progress; }
.button-outline { background: transparent; color: var(--accent); }

.cards, .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(280px, 1fr)); gap: 1.25rem; }
.card { background: var(--surface); border: 1px solid var(--border); border-radius: 12px; padding: 1.25rem; }
.card img { width: 100%; border-radius: 8px; }
.badges { display: flex; flex-wrap: wrap; gap: 0.4rem; }
.badge { font-size: 0.8rem; padding: 0.15rem 0.55rem; border-radius: 999px; background: var(--accent-light); color: var(--accent); }
.badge-accent { background: var(--accent); color: #fff; }
.checklist { padding-left: 1.2rem; }
.timeline { list-style: none; padding: 0; display: grid; gap: 1.25rem; }
.metrics { display: flex; gap: 1.5rem; margin: 0.75rem 0; }
.metrics dt { color: var(--muted); font-size: 0.85rem; }
.metrics dd { margin: 0; font-weight: 700; font-size: 1.2rem; }

.filters { display: flex; flex-wrap: wrap; align-items: center; gap: 1rem; margin-bottom: 1.5rem; }
.chips { display: flex; flex-wrap: wrap; gap: 0.5rem; }
.chips a { padding: 0.35rem 0.85rem; border: 1px solid var(--border); border-radius: 999px; text-decoration: none; color: var(--text); text-transform: capitalize; }
.chips a.active { background: var(--accent); border-color: var(--accent); color: #fff; }
.count { opacity: 0.7; font-size: 0.8em; }
.search input { padding: 0.45rem 0.75rem; border: 1px solid var(--border); border-radius: 8px; background: var(--surface); color: var(--text); }
.empty { text-align: center; padding: 3rem 1rem; color: var(--muted); }

.skills { list-style: none; padding: 0; display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 1rem 2rem; }
.skill-head { display: flex; justify-content: space-between; }
.meter { height: 8px; background: var(--border); border-radius: 999px; overflow: hidden; }
.meter span { display: block; height: 100%; background: var(--accent); }

.contact-form { display: flex; flex-direction: column; gap: 0.35rem; }
.contact-form input, .contact-form textarea { padding: 0.6rem 0.75rem; border: 1px solid var(--border); border-radius: 8px; background: var(--surface); color: var(--text); font: inherit; }
.contact-form [aria-invalid] { border-color: var(--danger); }
.contact-form .button { margin-top: 0.75rem; align-self: flex-start; }
.field-error { color: var(--danger); font-size: 0.85rem; margin: 0; }
.banner { padding: 0.75rem 1rem; border-radius: 8px; color: #fff; }
.banner-success { background: var(--success); }
.banner-error { background: var(--danger); }
.hp { position: absolute; left: -10000px; width: 1px; height: 1px; overflow: hidden; }
.contact-info { list-style: none; padding: 0; }

.skeleton .bone { height: 1rem; margin: 0.75rem 0; border-radius: 6px; background: linear-gradient(90deg, var(--border), var(--surface), var(--border)); background-size: 200% 100%; animation: shimmer 1.2s infinite; }
.skeleton .bone-title { height: 2rem; width: 40%; }
.skeleton .bone-short { width: 60%; }
@keyframes shimmer { to { background-position: -200% 0; } }

.reveal { animation: reveal var(--anim-duration) var(--anim-easing) both; animation-delay: calc(var(--i, 0) * var(--anim-stagger)); }
@keyframes reveal { from { opacity: 0; transform: translateY(12px); } to { opacity: 1; transform: none; } }
@media (prefers-reduced-motion: reduce) { .reveal, .spinner, .skeleton .bone { animation: none; } }

.noscript { text-align: center; }
.error-page { display: flex; align-items: center; justify-content: center; min-height: 100vh; padding: 1rem; }
.error-page .card { max-width: 640px; text-align: center; }
.error-page .status { font-size: 4rem; font-weight: 800; color: var(--accent); margin: 0; }
.error-page pre { text-align: left; overflow-x: auto; font-size: 0.8rem; }

@media (max-width: 900px) {
  .sidebar { position: static; width: auto; border-right: 0; border-bottom: 1px solid var(--border); }
  .main { margin-left: 0; height: auto; }
  .section { padding: 2.5rem 1.25rem; }
}
`

const jsContent = `(function () {
  'use strict';

  var cfg = JSON.parse(document.getElementById('client-config').textContent);
  var main = document.getElementById('main');
  var splash = document.getElementById('splash');
  var active = null;

  function beacon(type, label, value, unit) {
    var body = JSON.stringify({ type: type, label: String(label), value: value || 0, unit: unit || '' });
    if (navigator.sendBeacon) {
      navigator.sendBeacon('/api/events', new Blob([body], { type: 'application/json' }));
      return;
    }
    fetch('/api/events', { method: 'POST', headers: { 'Content-Type': 'application/json' }, body: body, keepalive: true });
  }

  // The active section is the last one whose span contains scrollTop + offset.
  function compute() {
    if (!main || !main.isConnected) return;
    var pos = main.scrollTop + cfg.offset;
    var next = cfg.sections[0];
    cfg.sections.forEach(function (id) {
      var el = document.getElementById(id);
      if (!el) return;
      var top = el.offsetTop - main.offsetTop;
      if (pos >= top && pos < top + el.offsetHeight) next = id;
    });
    if (next === active) return;
    active = next;
    document.querySelectorAll('.sidebar [data-section]').forEach(function (a) {
      if (a.dataset.section === active) a.setAttribute('aria-current', 'true');
      else a.removeAttribute('aria-current');
    });
  }

  function swap(el, html) {
    var tpl = document.createElement('template');
    tpl.innerHTML = html.trim();
    var next = tpl.content.firstElementChild;
    if (!next || !el) return el;
    el.replaceWith(next);
    bind(next);
    compute();
    return next;
  }

  function fragment(url) {
    return fetch(url, { headers: { 'X-Fragment': '1' } }).then(function (r) { return r.text(); });
  }

  function load(el) {
    if (!el || !el.dataset.src) return Promise.resolve(el);
    var src = el.dataset.src;
    delete el.dataset.src;
    return fragment(src)
      .then(function (html) { return swap(el, html); })
      .catch(function (err) { beacon('error', err.message); return el; });
  }

  function navigate(id) {
    var el = document.getElementById(id);
    if (!el) return;
    // An unloaded section is recorded by the server when it is fetched.
    var pending = !!el.dataset.src;
    if (pending) el.dataset.src += '?nav=1';
    load(el).then(function (ready) {
      var target = Math.max(0, ready.offsetTop - main.offsetTop - cfg.navigationSpacing);
      main.scrollTo({ top: target, behavior: 'smooth' });
      if (!pending) beacon('navigate', id);
    });
  }

  function refresh(section, query) {
    var focused = document.activeElement && document.activeElement.name;
    fragment('/sections/' + section.id + (query ? '?' + query : '')).then(function (html) {
      var next = swap(section, html);
      if (!focused) return;
      var input = next.querySelector('[name="' + focused + '"]');
      if (input && input.type === 'search') {
        input.focus();
        input.setSelectionRange(input.value.length, input.value.length);
      }
    });
  }

  function bindContact(section, form) {
    form.addEventListener('submit', function (e) {
      e.preventDefault();
      var button = form.querySelector('button[type=submit]');
      if (button.disabled) return;
      button.disabled = true;
      button.textContent = 'Sending...';
      var ctrl = new AbortController();
      var timer = setTimeout(function () { ctrl.abort(); }, cfg.submitTimeoutMs);
      fetch(form.action, {
        method: 'POST',
        headers: { 'X-Fragment': '1' },
        body: new URLSearchParams(new FormData(form)),
        signal: ctrl.signal
      })
        .then(function (r) { return r.text(); })
        .then(function (html) {
          var next = swap(section, html);
          var banner = next.querySelector('[data-banner]');
          if (banner) setTimeout(function () { banner.hidden = true; }, cfg.successWindowMs);
        })
        .catch(function (err) {
          beacon('error', err.message);
          button.disabled = false;
          button.textContent = 'Send Message';
        })
        .finally(function () { clearTimeout(timer); });
    });
  }

  function bind(section) {
    section.querySelectorAll('a[data-filter]').forEach(function (a) {
      a.addEventListener('click', function (e) {
        e.preventDefault();
        refresh(section, a.dataset.filter);
      });
    });
    section.querySelectorAll('form[data-filter-form]').forEach(function (f) {
      var timer;
      var params = function () {
        var p = new URLSearchParams(new FormData(f));
        p.delete('full');
        return p.toString();
      };
      f.addEventListener('submit', function (e) {
        e.preventDefault();
        refresh(section, params());
      });
      f.addEventListener('input', function () {
        clearTimeout(timer);
        timer = setTimeout(function () { refresh(section, params()); }, 250);
      });
    });
    var form = section.querySelector('form[data-contact]');
    if (form) bindContact(section, form);
  }

  function reveal() {
    if (splash) splash.hidden = true;
    var pending = Array.prototype.slice.call(main.querySelectorAll('[data-src]'));
    Promise.all(pending.map(load)).then(compute);
  }

  document.addEventListener('click', function (e) {
    var link = e.target.closest('[data-section]');
    if (link) {
      e.preventDefault();
      navigate(link.dataset.section);
      return;
    }
    var social = e.target.closest('[data-contact-method]');
    if (social) beacon('contact', social.dataset.contactMethod);
  });

  main.querySelectorAll('.section:not(.skeleton)').forEach(bind);
  main.addEventListener('scroll', compute, { passive: true });
  compute();
  cfg.retryDelays.forEach(function (d) { setTimeout(compute, d); });

  if (cfg.ready) reveal();
  else setTimeout(reveal, cfg.splashMs);

  window.addEventListener('error', function (e) { beacon('error', e.message); });

  if ('PerformanceObserver' in window) {
    try {
      new PerformanceObserver(function (list) {
        list.getEntries().forEach(function (en) {
          if (en.entryType === 'largest-contentful-paint') beacon('performance', 'LCP', en.startTime, 'ms');
          else if (en.entryType === 'first-input') beacon('performance', 'FID', en.processingStart - en.startTime, 'ms');
          else if (en.entryType === 'layout-shift' && !en.hadRecentInput) beacon('performance', 'CLS', en.value, '');
        });
      }).observe({ entryTypes: ['largest-contentful-paint', 'first-input', 'layout-shift'] });
    } catch (err) {
      // Unsupported entry types.
    }
  }
})();
`
