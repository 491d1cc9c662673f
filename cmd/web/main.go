// @title           TemplHub API
// @version         1.0
// @description     REST API маркетплейса цифровых шаблонов.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

package main

import "templhub_backend/internal/app"

func main() {
	app.Run()
}
