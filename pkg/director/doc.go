// Package director orchestrates builders through fixed step sequences.
//
// A Director holds a reference to a builders.Builder, never ownership of
// it. The client keeps the builder, retrieves the product from it after
// orchestration and may reassign the director to another builder at any
// time:
//
//	b := builders.NewConcreteBuilder()
//	d := director.New()
//	d.SetBuilder(b)
//	if err := d.BuildFullFeaturedProduct(); err != nil {
//		return err
//	}
//	fmt.Println(b.GetProduct().Describe())
//
// Named sequences beyond the two built-ins are expressed as Recipes and
// kept in a Cookbook.
package director
