// Package scriptenv abstracts the environment that executes loaded scripts.
//
// The loader hands each candidate URL to an Environment and treats the call
// as the authoritative success or failure signal for that attempt. The HTTP
// implementation fetches the URL and hands the payload to a configurable
// handler; hosts with their own execution machinery can implement
// Environment directly or wrap a function with Func.
//
// # Usage
//
//	env, err := scriptenv.NewHTTP(scriptenv.Config{
//	    Handler: func(url string, body []byte) error {
//	        return vm.Eval(body)
//	    },
//	})
//	err = env.Load(ctx, "https://unpkg.com/lodash@4.17.21/lodash.min.js")
package scriptenv
