package main

import "net/http"

// externalHTTPClient is shared by all outbound calls. It carries no global
// timeout: every call site sets its own context deadline (5s probes, 45s
// generations, 300s pulls).
var externalHTTPClient = &http.Client{}
