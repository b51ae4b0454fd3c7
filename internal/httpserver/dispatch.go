package httpserver

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
)

// Action selects one operation of an endpoint.
type Action string

const allowHeaders = "Content-Type, Authorization, X-Authorization, X-Request-Id"

type routeKey struct {
	method string
	action Action
}

type route struct {
	handler echo.HandlerFunc
	admin   bool
}

// Dispatcher serves one endpoint from a table of (method, action) entries.
// The action comes from the "action" query parameter, then the ":action"
// path parameter, then the per-method default, then the endpoint default.
type Dispatcher struct {
	defaultAction Action
	methodDefault map[string]Action
	routes        map[routeKey]route
	guard         echo.MiddlewareFunc
	unmatched     *echo.HTTPError
}

// NewDispatcher builds an empty table. When guard is not nil it wraps every
// entry registered with Admin.
func NewDispatcher(def Action, guard echo.MiddlewareFunc) *Dispatcher {
	return &Dispatcher{
		defaultAction: def,
		methodDefault: map[string]Action{},
		routes:        map[routeKey]route{},
		guard:         guard,
		unmatched:     echo.NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed"),
	}
}

func (d *Dispatcher) On(method string, a Action, h echo.HandlerFunc) *Dispatcher {
	d.routes[routeKey{method, a}] = route{handler: h}
	return d
}

func (d *Dispatcher) Admin(method string, a Action, h echo.HandlerFunc) *Dispatcher {
	d.routes[routeKey{method, a}] = route{handler: h, admin: true}
	return d
}

// DefaultFor overrides the default action for one method.
func (d *Dispatcher) DefaultFor(method string, a Action) *Dispatcher {
	d.methodDefault[method] = a
	return d
}

// Unmatched replaces the 405 returned for unknown (method, action) pairs.
func (d *Dispatcher) Unmatched(code int, msg string) *Dispatcher {
	d.unmatched = echo.NewHTTPError(code, msg)
	return d
}

func (d *Dispatcher) Serve(c echo.Context) error {
	method := c.Request().Method
	if method == http.MethodOptions {
		return d.preflight(c)
	}

	r, ok := d.routes[routeKey{method, d.action(c)}]
	if !ok {
		return d.unmatched
	}
	h := r.handler
	if r.admin && d.guard != nil {
		h = d.guard(h)
	}
	return h(c)
}

func (d *Dispatcher) action(c echo.Context) Action {
	if a := c.QueryParam("action"); a != "" {
		return Action(a)
	}
	if a := c.Param("action"); a != "" {
		return Action(a)
	}
	if a, ok := d.methodDefault[c.Request().Method]; ok {
		return a
	}
	return d.defaultAction
}

func (d *Dispatcher) preflight(c echo.Context) error {
	h := c.Response().Header()
	h.Set(echo.HeaderAccessControlAllowOrigin, "*")
	h.Set(echo.HeaderAccessControlAllowMethods, d.allowMethods())
	h.Set(echo.HeaderAccessControlAllowHeaders, allowHeaders)
	h.Set(echo.HeaderAccessControlMaxAge, "86400")
	return c.NoContent(http.StatusOK)
}

func (d *Dispatcher) allowMethods() string {
	seen := map[string]bool{http.MethodOptions: true}
	for k := range d.routes {
		seen[k.method] = true
	}
	methods := make([]string, 0, len(seen))
	for m := range seen {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
