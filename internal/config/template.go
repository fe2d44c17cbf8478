package config

// DefaultShellConfigTemplate is the commented configuration written by
// "config init". It must stay equivalent to DefaultShellConfig.
const DefaultShellConfigTemplate = `# Grünerator desktop shell configuration

app:
  identifier: "de.gruenerator.app"   # Keys the single-instance lock and autostart entry
  name: "Grünerator"
  # data_dir: ""                     # Lock file and control socket; defaults to the user config dir

startup:
  splash_timeout: "3s"               # Fallback if the UI never signals readiness
  devtools: false                    # Open the web inspector on the main window
  start_minimized: false

deep_link:
  scheme: "gruenerator"              # Auth callbacks arrive as gruenerator://auth/callback?...
  register: true                     # Register the scheme with the OS on startup

menu:
  docs_url: "https://gruenerator.de/"
  feedback_url: "https://gitlab.com/Netzbegruenung/gruenerator/-/issues"

tray:
  enabled: true
  tooltip: "Grünerator"

update:
  source: manifest                   # manifest, github or none
  channel: stable                    # stable or prerelease
  manifest_url: "https://gruenerator.de/desktop/latest.json"
  # github_owner: ""
  # github_repo: ""
  timeout: "30s"

instance:
  enabled: true
  forward_timeout: "5s"              # How long a second launch waits for the running instance

autostart:
  args: ["--minimized"]

api:
  socket: "shell.sock"               # Relative to data_dir
  metrics: true                      # Serve /metrics on the control socket

logging:
  level: info                        # debug, info, warn, error
  format: text                       # text or json
  output: stderr                     # stdout, stderr or a file path
`
