package http

import (
	"fmt"
	"net/http"
)

func (s *Server) handlePanelPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Home Panel</title>
    <style>
        body { font-family: sans-serif; max-width: 480px; margin: 40px auto; padding: 20px; line-height: 1.6; background-color: #f4f4f9; }
        .card { padding: 20px; background: white; border: 1px solid #ccc; border-radius: 4px; margin-bottom: 20px; }
        .line { font-size: 1.2em; }
        .busy { color: #856404; font-style: italic; }
        button { padding: 10px 15px; background: #007bff; color: white; border: none; cursor: pointer; border-radius: 4px; margin: 4px; }
        button:hover { background: #0056b3; }
        button.secondary { background: #6c757d; }
        .modal { display: none; position: fixed; z-index: 1001; left: 0; top: 0; width: 100%; height: 100%; background-color: rgba(0,0,0,0.5); }
        .modal-content { background-color: white; margin: 20vh auto; padding: 20px; border: 1px solid #888; width: 90%; max-width: 400px; border-radius: 8px; white-space: pre-line; }
        .error { background: #f8d7da; color: #721c24; border: 1px solid #f5c6cb; }
    </style>
</head>
<body>
    <h1>Home Panel</h1>
    <div class="card" id="screen"></div>
    <div class="card">
        <button onclick="toggle('light')">Light</button>
        <button onclick="toggle('fan')">Fan</button>
        <button onclick="toggle('door')">Door</button>
        <button class="secondary" onclick="post('/api/motion/reset')">Reset motion</button>
    </div>

    <div id="promptModal" class="modal">
        <div class="modal-content">
            <h2 id="promptTitle"></h2>
            <p id="promptMessage"></p>
            <button onclick="answer('yes')">Yes</button>
            <button class="secondary" onclick="answer('no')">No</button>
        </div>
    </div>

    <div id="alertModal" class="modal">
        <div class="modal-content error">
            <h2 id="alertTitle"></h2>
            <p id="alertMessage"></p>
            <button onclick="post('/api/alert/dismiss')">OK</button>
        </div>
    </div>

    <script>
        let promptId = null;

        async function post(url) {
            await fetch(url, { method: 'POST' });
            refresh();
        }

        function toggle(device) {
            post('/api/devices/' + device + '/toggle');
        }

        function answer(choice) {
            if (promptId) post('/api/prompt/' + promptId + '/' + choice);
        }

        async function refresh() {
            const res = await fetch('/api/state');
            const state = await res.json();

            const screen = document.getElementById('screen');
            screen.innerHTML = '';
            state.lines.forEach(line => {
                const div = document.createElement('div');
                div.className = line.startsWith('Communicating') ? 'line busy' : 'line';
                div.textContent = line;
                screen.appendChild(div);
            });

            const promptModal = document.getElementById('promptModal');
            if (state.prompt) {
                promptId = state.prompt.id;
                document.getElementById('promptTitle').textContent = state.prompt.title;
                document.getElementById('promptMessage').textContent = state.prompt.message;
                promptModal.style.display = 'block';
            } else {
                promptId = null;
                promptModal.style.display = 'none';
            }

            const alertModal = document.getElementById('alertModal');
            if (state.alert) {
                document.getElementById('alertTitle').textContent = state.alert.title;
                document.getElementById('alertMessage').textContent = state.alert.message;
                alertModal.style.display = 'block';
            } else {
                alertModal.style.display = 'none';
            }
        }

        refresh();
        setInterval(refresh, 1000);
    </script>
</body>
</html>
`)
}
